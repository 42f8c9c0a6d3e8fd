package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/ports"
)

// Resolver recomputes fact scores and statuses for one (target, field) group
// from its full vote history. Resolution is deterministic and idempotent:
// re-running it over an unchanged history never changes stored state, and it
// never fails on malformed histories - flagging those is the auditor's job.
type Resolver struct {
	store ports.Store

	mu     sync.Mutex
	groups map[string]*sync.Mutex
}

// NewResolver creates a new Resolver.
func NewResolver(store ports.Store) *Resolver {
	return &Resolver{
		store:  store,
		groups: make(map[string]*sync.Mutex),
	}
}

// groupMu returns the mutex serializing resolution of one (target, field)
// group. Concurrent resolution of different groups is independent.
func (r *Resolver) groupMu(targetID string, field entities.FieldName) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := targetID + "/" + string(field)
	mu, ok := r.groups[key]
	if !ok {
		mu = &sync.Mutex{}
		r.groups[key] = mu
	}
	return mu
}

// Resolve recomputes every fact in the (target, field) group from its vote
// history and persists only the facts whose status or score actually changed.
// A status change is stamped with now. An empty vote set is a no-op.
func (r *Resolver) Resolve(ctx context.Context, targetID string, field entities.FieldName, now time.Time) error {
	mu := r.groupMu(targetID, field)
	mu.Lock()
	defer mu.Unlock()

	votes, err := r.store.FindVotesByGroup(ctx, targetID, field)
	if err != nil {
		return fmt.Errorf("loading group votes: %w", err)
	}
	if len(votes) == 0 {
		return nil
	}

	facts, err := r.store.FindFactsByGroup(ctx, targetID, field)
	if err != nil {
		return fmt.Errorf("loading group facts: %w", err)
	}
	factByID := make(map[int64]*entities.Fact, len(facts))
	for _, f := range facts {
		factByID[f.ID] = f
	}

	creds, err := r.loadCredentials(ctx, votes)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	// Group votes per fact. Votes arrive ordered by (fact id, vote id), so
	// the group order is fact id ascending and each group keeps its
	// chronological order.
	var order []int64
	grouped := make(map[int64][]*entities.Vote)
	for _, v := range votes {
		if _, ok := grouped[v.FactID]; !ok {
			order = append(order, v.FactID)
		}
		grouped[v.FactID] = append(grouped[v.FactID], v)
	}

	var ranked, deleted []*tally
	for _, factID := range order {
		fact, ok := factByID[factID]
		if !ok {
			// Orphaned votes; tolerated here, flagged by the auditor.
			continue
		}
		t := tallyVotes(fact, grouped[factID], creds)
		if t.forceDeleted() {
			t.status = entities.FactDeleted
			deleted = append(deleted, t)
		} else {
			ranked = append(ranked, t)
		}
	}

	// Rank survivors by score descending; the stable sort keeps equal scores
	// in fact id order, so the lower id wins ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for i, t := range ranked {
		switch {
		case i == 0 && t.score > entities.TrustedThreshold:
			t.status = entities.FactTrusted
		case t.score > 0:
			t.status = entities.FactUntrusted
		default:
			t.status = entities.FactHidden
		}
	}

	for _, t := range append(ranked, deleted...) {
		if t.fact.Status == t.status && t.fact.Score == t.score {
			continue
		}
		statusAt := t.fact.StatusUpdatedAt
		if t.fact.Status != t.status {
			statusAt = now
		}
		if err := r.store.UpdateFactResolution(ctx, t.fact.ID, t.status, t.score, statusAt); err != nil {
			return fmt.Errorf("updating fact %d: %w", t.fact.ID, err)
		}
	}
	return nil
}

// loadCredentials fetches the credential records referenced by the votes.
func (r *Resolver) loadCredentials(ctx context.Context, votes []*entities.Vote) (map[string]*entities.Credential, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, v := range votes {
		if v.CredentialID == "" || seen[v.CredentialID] {
			continue
		}
		seen[v.CredentialID] = true
		ids = append(ids, v.CredentialID)
	}
	if len(ids) == 0 {
		return map[string]*entities.Credential{}, nil
	}
	return r.store.FindCredentialsByIDs(ctx, ids)
}

// tally accumulates one fact's vote history.
type tally struct {
	fact          *entities.Fact
	votes         []*entities.Vote
	score         float64
	status        entities.FactStatus
	authNegatives int
	deleteVote    *entities.Vote
}

func tallyVotes(fact *entities.Fact, votes []*entities.Vote, creds map[string]*entities.Credential) *tally {
	t := &tally{fact: fact, votes: votes}
	for _, v := range votes {
		var w VoteWeight
		if v.CredentialID == "" {
			w = WeightOf(nil, v.CreatedAt, fact.TargetID)
		} else if cred := creds[v.CredentialID]; cred != nil {
			w = WeightOf(cred, v.CreatedAt, fact.TargetID)
		}
		// A credential id with no matching record counts for nothing.

		t.score += w.Contribution(v.Kind)
		if v.Kind.Sign() < 0 && w.Authenticated {
			t.authNegatives++
		}
		if v.Kind == entities.VoteDeleteRequested && t.deleteVote == nil {
			t.deleteVote = v
		}
	}
	return t
}

// forceDeleted reports whether the deletion override applies: either the
// proposer is retracting a claim nobody else supported, or every
// authenticated contributor rejected a claim with no competing support.
// Authenticated rejections by others never block a retraction; only
// supporting votes from someone other than the retractor do.
func (t *tally) forceDeleted() bool {
	if t.deleteVote != nil {
		if len(t.votes) != 1+t.authNegatives {
			return false
		}
		for _, v := range t.votes {
			if v.ID == t.deleteVote.ID {
				continue
			}
			if v.Kind.Sign() > 0 && v.CredentialID != t.deleteVote.CredentialID {
				return false
			}
		}
		return true
	}
	return t.authNegatives > 1 && len(t.votes) == 1+t.authNegatives
}
