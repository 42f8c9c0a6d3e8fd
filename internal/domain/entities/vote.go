package entities

import "time"

// VoteKind is the closed set of vote event types.
type VoteKind string

const (
	// VoteAdded is recorded once, when a fact is proposed.
	VoteAdded VoteKind = "added"
	// VoteUpvoted endorses a fact.
	VoteUpvoted VoteKind = "up"
	// VoteDownvoted disputes a fact.
	VoteDownvoted VoteKind = "down"
	// VoteDeleteRequested asks for a fact to be withdrawn.
	VoteDeleteRequested VoteKind = "delete_request"
)

// Sign returns the direction the vote pushes a fact's score: +1 for
// added/up, -1 for down/delete-request.
func (k VoteKind) Sign() int {
	switch k {
	case VoteAdded, VoteUpvoted:
		return 1
	case VoteDownvoted, VoteDeleteRequested:
		return -1
	}
	return 0
}

// Valid reports whether k is a known vote kind.
func (k VoteKind) Valid() bool {
	switch k {
	case VoteAdded, VoteUpvoted, VoteDownvoted, VoteDeleteRequested:
		return true
	}
	return false
}

// Vote is an immutable append-only event on a fact. An empty CredentialID
// means the vote was cast anonymously. Votes are never mutated by the
// resolution engine; only the auditor's repair mode may delete or rewrite
// them.
type Vote struct {
	ID           int64     `json:"id"`
	FactID       int64     `json:"fact_id"`
	CredentialID string    `json:"credential_id,omitempty"`
	Kind         VoteKind  `json:"kind"`
	CreatedAt    time.Time `json:"created_at"`
}
