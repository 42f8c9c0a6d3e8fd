package entities

import "time"

// FieldName is the category of an editable target field.
type FieldName string

const (
	FieldDisplayName FieldName = "name"
	FieldEmail       FieldName = "email"
	FieldCity        FieldName = "city"
	FieldCompany     FieldName = "company"
	FieldLink        FieldName = "link"
	FieldSocialFB    FieldName = "social_fb"
	FieldSocialVK    FieldName = "social_vk"
	FieldGrade       FieldName = "grade"
)

// FieldNames lists every editable field in display order.
var FieldNames = []FieldName{
	FieldDisplayName,
	FieldEmail,
	FieldCity,
	FieldCompany,
	FieldLink,
	FieldSocialFB,
	FieldSocialVK,
	FieldGrade,
}

// Valid reports whether f is a known field name.
func (f FieldName) Valid() bool {
	for _, known := range FieldNames {
		if f == known {
			return true
		}
	}
	return false
}

// FactStatus is the closed set of derived fact states.
type FactStatus string

const (
	FactTrusted   FactStatus = "trusted"
	FactUntrusted FactStatus = "untrusted"
	FactHidden    FactStatus = "hidden"
	FactDeleted   FactStatus = "deleted"
)

// Rank orders statuses for display: trusted claims first, withdrawn last.
func (s FactStatus) Rank() int {
	switch s {
	case FactTrusted:
		return 0
	case FactUntrusted:
		return 1
	case FactHidden:
		return 2
	case FactDeleted:
		return 3
	}
	return 4
}

// TrustedThreshold is the score the top-ranked fact of a group must exceed to
// be marked trusted. A lone anonymous self-boosted vote tops out at 1.0 and
// must not cross it; a lone self-confirmed vote at default trust scores 10.
const TrustedThreshold = 0.9

// Fact is one proposed value for a (target, field) pair. Status and Score are
// derived from the fact's vote history by the resolver and are never written
// directly by collaborators.
type Fact struct {
	ID              int64      `json:"id"`
	TargetID        string     `json:"target_id"`
	AuthorID        string     `json:"author_id,omitempty"`
	Field           FieldName  `json:"field"`
	Value           string     `json:"value"`
	Status          FactStatus `json:"status"`
	Score           float64    `json:"score"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	CreatedAt       time.Time  `json:"created_at"`
}
