package entities

import "time"

// CredentialStatus is the closed set of credential validity states.
type CredentialStatus string

const (
	CredentialValid       CredentialStatus = "valid"
	CredentialRevoked     CredentialStatus = "revoked"
	CredentialNonexistent CredentialStatus = "nonexistent"
)

// Valid reports whether s is a known credential status.
func (s CredentialStatus) Valid() bool {
	switch s {
	case CredentialValid, CredentialRevoked, CredentialNonexistent:
		return true
	}
	return false
}

// DefaultTrustWeight is the trust weight assigned to newly seen credentials.
const DefaultTrustWeight = 1.0

// Credential identifies a contributor. A credential may belong to the target
// it edits (OwnerTargetID), in which case its votes on that target's facts
// count as self-edits. Credentials are created lazily the first time an
// unseen code shows up and start out nonexistent until an external identity
// check classifies them.
type Credential struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Status        CredentialStatus `json:"status"`
	TrustWeight   float64          `json:"trust_weight"`
	OwnerTargetID string           `json:"owner_target_id,omitempty"`
	RevokedAt     *time.Time       `json:"revoked_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
