package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/ports"
)

// Auditor scans vote histories for structural violations and can plan and
// apply repairs. Detection never mutates data; repairs are applied one
// all-or-nothing transaction per fact and only on explicit request. The
// auditor does not recompute fact statuses - callers re-run resolution
// afterwards if they want repaired histories reflected.
type Auditor struct {
	store ports.Store
}

// NewAuditor creates a new Auditor.
func NewAuditor(store ports.Store) *Auditor {
	return &Auditor{store: store}
}

// CheckReport summarizes a detect-only audit pass.
type CheckReport struct {
	Violations []entities.Violation
	TotalFacts int
	CleanFacts int
}

// AppliedRepair records one convert action taken on a fact.
type AppliedRepair struct {
	FactID int64
	Action entities.RepairAction
}

// Check flags structurally invalid votes on one fact. Votes are examined per
// author in vote id order.
func Check(fact *entities.Fact, votes []*entities.Vote) []entities.Violation {
	var violations []entities.Violation
	flag := func(kind entities.ViolationKind, v *entities.Vote, format string, args ...any) {
		violation := entities.Violation{
			Kind:    kind,
			FactID:  fact.ID,
			Message: fmt.Sprintf(format, args...),
		}
		if v != nil {
			violation.VoteID = v.ID
			violation.AuthorID = v.CredentialID
		}
		violations = append(violations, violation)
	}

	addedSeen := false
	for _, group := range groupByAuthor(votes) {
		isAuthor := false
		upSeen, downSeen := false, false
		for _, v := range group {
			switch {
			case v.Kind == entities.VoteAdded:
				if addedSeen {
					flag(entities.ViolationDuplicateAdded, v, "additional added vote on fact #%d by %q", fact.ID, v.CredentialID)
				}
				if v.CredentialID != fact.AuthorID {
					flag(entities.ViolationMismatchedAdded, v, "added vote on fact #%d by %q, fact author is %q", fact.ID, v.CredentialID, fact.AuthorID)
				}
				addedSeen = true
				isAuthor = true
			case isAuthor && (v.Kind == entities.VoteUpvoted || v.Kind == entities.VoteDownvoted):
				flag(entities.ViolationSelfUpDown, v, "up/down vote by author on fact #%d", fact.ID)
			case !isAuthor && v.Kind == entities.VoteDeleteRequested:
				flag(entities.ViolationForeignDelete, v, "delete request not by author on fact #%d", fact.ID)
			case upSeen && v.Kind == entities.VoteDownvoted:
				flag(entities.ViolationFlipFlop, v, "down after up on fact #%d", fact.ID)
			case downSeen && v.Kind == entities.VoteUpvoted:
				flag(entities.ViolationFlipFlop, v, "up after down on fact #%d", fact.ID)
			}
			if v.Kind == entities.VoteUpvoted {
				upSeen = true
			}
			if v.Kind == entities.VoteDownvoted {
				downSeen = true
			}
		}
	}
	if !addedSeen {
		flag(entities.ViolationMissingAdded, nil, "no added vote on fact #%d", fact.ID)
	}
	return violations
}

// PlanRepairs walks one fact's votes per author and plans the repairs the
// convert mode performs: self-authored up/down votes are dropped, a
// non-author delete request is rewritten into a downvote, and where an author
// cast several up/down votes only the most recent survives. Added votes are
// never touched.
func PlanRepairs(fact *entities.Fact, votes []*entities.Vote) []entities.RepairAction {
	var actions []entities.RepairAction
	for _, group := range groupByAuthor(votes) {
		isAuthor := false
		var upDowns []*entities.Vote
		for _, v := range group {
			kind := v.Kind
			switch {
			case kind == entities.VoteAdded:
				isAuthor = true
			case isAuthor && (kind == entities.VoteUpvoted || kind == entities.VoteDownvoted):
				actions = append(actions, entities.RepairAction{
					Op:     entities.RepairDeleteVote,
					VoteID: v.ID,
					Reason: fmt.Sprintf("up/down vote by author on fact #%d", fact.ID),
				})
				continue
			case !isAuthor && kind == entities.VoteDeleteRequested:
				actions = append(actions, entities.RepairAction{
					Op:      entities.RepairRewriteKind,
					VoteID:  v.ID,
					NewKind: entities.VoteDownvoted,
					Reason:  fmt.Sprintf("delete request not by author on fact #%d", fact.ID),
				})
				kind = entities.VoteDownvoted
			}
			if kind == entities.VoteUpvoted || kind == entities.VoteDownvoted {
				upDowns = append(upDowns, v)
			}
		}
		if len(upDowns) > 1 {
			for _, v := range upDowns[:len(upDowns)-1] {
				actions = append(actions, entities.RepairAction{
					Op:     entities.RepairDeleteVote,
					VoteID: v.ID,
					Reason: fmt.Sprintf("superseded up/down vote on fact #%d", fact.ID),
				})
			}
		}
	}
	return actions
}

// groupByAuthor splits votes into per-author sub-sequences ordered by
// (author, vote id). Anonymous votes form a single group.
func groupByAuthor(votes []*entities.Vote) [][]*entities.Vote {
	sorted := make([]*entities.Vote, len(votes))
	copy(sorted, votes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CredentialID != sorted[j].CredentialID {
			return sorted[i].CredentialID < sorted[j].CredentialID
		}
		return sorted[i].ID < sorted[j].ID
	})

	var groups [][]*entities.Vote
	for i, v := range sorted {
		if i == 0 || v.CredentialID != sorted[i-1].CredentialID {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], v)
	}
	return groups
}

// CheckAll runs the detect-only pass over every fact in the store.
func (a *Auditor) CheckAll(ctx context.Context) (*CheckReport, error) {
	facts, err := a.store.AllFacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading facts: %w", err)
	}

	report := &CheckReport{TotalFacts: len(facts)}
	for _, fact := range facts {
		votes, err := a.store.FindVotesByFact(ctx, fact.ID)
		if err != nil {
			return nil, fmt.Errorf("loading votes for fact %d: %w", fact.ID, err)
		}
		violations := Check(fact, votes)
		if len(violations) == 0 {
			report.CleanFacts++
		}
		report.Violations = append(report.Violations, violations...)
	}
	return report, nil
}

// ConvertAll plans and applies repairs for every fact, one transaction per
// fact, and records each applied action in the audit log.
func (a *Auditor) ConvertAll(ctx context.Context) ([]AppliedRepair, error) {
	facts, err := a.store.AllFacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading facts: %w", err)
	}

	var applied []AppliedRepair
	for _, fact := range facts {
		votes, err := a.store.FindVotesByFact(ctx, fact.ID)
		if err != nil {
			return nil, fmt.Errorf("loading votes for fact %d: %w", fact.ID, err)
		}
		actions := PlanRepairs(fact, votes)
		if len(actions) == 0 {
			continue
		}
		if err := a.store.ApplyRepairs(ctx, fact.ID, actions); err != nil {
			return applied, fmt.Errorf("repairing fact %d: %w", fact.ID, err)
		}
		for _, action := range actions {
			applied = append(applied, AppliedRepair{FactID: fact.ID, Action: action})
			_ = a.store.LogAction(ctx, "audit.repair", fact.ID, map[string]any{
				"op":      string(action.Op),
				"vote_id": action.VoteID,
				"reason":  action.Reason,
			})
		}
	}
	return applied, nil
}
