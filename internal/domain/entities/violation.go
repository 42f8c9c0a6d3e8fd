package entities

// ViolationKind enumerates the structural vote problems the auditor detects.
type ViolationKind string

const (
	// ViolationDuplicateAdded flags a second added vote on the same fact.
	ViolationDuplicateAdded ViolationKind = "duplicate_added"
	// ViolationMismatchedAdded flags an added vote whose author differs from
	// the fact's recorded author.
	ViolationMismatchedAdded ViolationKind = "mismatched_added"
	// ViolationMissingAdded flags a fact with no added vote at all.
	ViolationMissingAdded ViolationKind = "missing_added"
	// ViolationSelfUpDown flags an up/down vote by the fact's own author.
	ViolationSelfUpDown ViolationKind = "self_up_down"
	// ViolationForeignDelete flags a delete request by anyone other than the
	// fact's author.
	ViolationForeignDelete ViolationKind = "foreign_delete_request"
	// ViolationFlipFlop flags an up vote following a down vote by the same
	// author, or vice versa.
	ViolationFlipFlop ViolationKind = "flip_flop"
)

// Violation describes one structurally invalid vote pattern on a fact. It is
// reported as data, never raised as an error.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	FactID   int64         `json:"fact_id"`
	VoteID   int64         `json:"vote_id,omitempty"`
	AuthorID string        `json:"author_id,omitempty"`
	Message  string        `json:"message"`
}

// RepairOp is the kind of mutation a repair action performs.
type RepairOp string

const (
	RepairDeleteVote  RepairOp = "delete"
	RepairRewriteKind RepairOp = "rewrite"
)

// RepairAction is one mutation the auditor's convert mode wants applied to a
// fact's vote history.
type RepairAction struct {
	Op      RepairOp `json:"op"`
	VoteID  int64    `json:"vote_id"`
	NewKind VoteKind `json:"new_kind,omitempty"`
	Reason  string   `json:"reason"`
}
