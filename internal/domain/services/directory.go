package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/ports"
)

// Sentinel errors for unknown references at the boundary.
var (
	ErrTargetNotFound = errors.New("target not found")
	ErrFactNotFound   = errors.New("fact not found")
	ErrVoteNotFound   = errors.New("vote not found")
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Directory exposes the boundary operations collaborators use: creating
// targets, proposing facts, voting, and reading resolved fact lists. Every
// vote-affecting mutation triggers resolution of the affected (target, field)
// group. Duplicate submissions are absorbed as no-ops so retries stay safe.
type Directory struct {
	store    ports.Store
	resolver *Resolver
}

// NewDirectory creates a new Directory.
func NewDirectory(store ports.Store, resolver *Resolver) *Directory {
	return &Directory{
		store:    store,
		resolver: resolver,
	}
}

// CreateTarget registers a new subject claims can be made about.
func (d *Directory) CreateTarget(ctx context.Context, name string) (*entities.Target, error) {
	if name == "" {
		return nil, errors.New("target name is required")
	}
	target := &entities.Target{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: timeNow(),
	}
	if err := d.store.SaveTarget(ctx, target); err != nil {
		return nil, fmt.Errorf("saving target: %w", err)
	}
	return target, nil
}

// FindTarget finds a target by ID.
func (d *Directory) FindTarget(ctx context.Context, targetID string) (*entities.Target, error) {
	target, err := d.store.FindTargetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("finding target: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}
	return target, nil
}

// ListTargets lists targets with pagination.
func (d *Directory) ListTargets(ctx context.Context, limit, offset int) ([]*entities.Target, int, error) {
	targets, err := d.store.ListTargets(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := d.store.CountTargets(ctx)
	if err != nil {
		return nil, 0, err
	}
	return targets, total, nil
}

// CreateFact proposes a value for one field of a target, records the implicit
// added vote, and resolves the affected group. Re-proposing an existing
// (target, field, value) is a no-op returning the existing fact. An empty
// code proposes anonymously.
func (d *Directory) CreateFact(ctx context.Context, targetID string, field entities.FieldName, value, code string) (*entities.Fact, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	if value == "" {
		return nil, errors.New("field value is required")
	}

	target, err := d.store.FindTargetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("finding target: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}

	existing, err := d.store.FindFactByValue(ctx, targetID, field, value)
	if err != nil {
		return nil, fmt.Errorf("checking existing fact: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	cred, err := d.credentialFor(ctx, code)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	fact := &entities.Fact{
		TargetID:        targetID,
		Field:           field,
		Value:           value,
		Status:          entities.FactUntrusted,
		StatusUpdatedAt: now,
		CreatedAt:       now,
	}
	if cred != nil {
		fact.AuthorID = cred.ID
	}
	if err := d.store.CreateFact(ctx, fact); err != nil {
		return nil, fmt.Errorf("creating fact: %w", err)
	}

	vote := &entities.Vote{
		FactID:    fact.ID,
		Kind:      entities.VoteAdded,
		CreatedAt: now,
	}
	if cred != nil {
		vote.CredentialID = cred.ID
	}
	if err := d.store.CreateVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("recording added vote: %w", err)
	}

	_ = d.store.LogAction(ctx, "fact.create", fact.ID, map[string]any{
		"target_id": targetID,
		"field":     string(field),
		"value":     value,
	})

	if err := d.resolver.Resolve(ctx, targetID, field, now); err != nil {
		return nil, fmt.Errorf("resolving group: %w", err)
	}
	return d.store.FindFactByID(ctx, fact.ID)
}

// CastVote appends a vote on a fact and resolves the affected group. Only
// up, down and delete-request kinds can be cast here; the added vote is
// recorded at fact creation. A duplicate identical (fact, kind, author) vote
// is a no-op, and an up/down vote replaces the same author's earlier vote of
// the opposite kind.
func (d *Directory) CastVote(ctx context.Context, factID int64, kind entities.VoteKind, code string) (*entities.Vote, error) {
	switch kind {
	case entities.VoteUpvoted, entities.VoteDownvoted, entities.VoteDeleteRequested:
	default:
		return nil, fmt.Errorf("cannot cast vote of kind %q", kind)
	}

	fact, err := d.store.FindFactByID(ctx, factID)
	if err != nil {
		return nil, fmt.Errorf("finding fact: %w", err)
	}
	if fact == nil {
		return nil, ErrFactNotFound
	}

	cred, err := d.credentialFor(ctx, code)
	if err != nil {
		return nil, err
	}
	var credID string
	if cred != nil {
		credID = cred.ID
	}

	existing, err := d.store.FindVote(ctx, factID, kind, credID)
	if err != nil {
		return nil, fmt.Errorf("checking existing vote: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if opposite, ok := oppositeKind(kind); ok {
		prior, err := d.store.FindVote(ctx, factID, opposite, credID)
		if err != nil {
			return nil, fmt.Errorf("checking opposite vote: %w", err)
		}
		if prior != nil {
			if err := d.store.DeleteVote(ctx, prior.ID); err != nil {
				return nil, fmt.Errorf("removing opposite vote: %w", err)
			}
		}
	}

	now := timeNow()
	vote := &entities.Vote{
		FactID:       factID,
		CredentialID: credID,
		Kind:         kind,
		CreatedAt:    now,
	}
	if err := d.store.CreateVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("recording vote: %w", err)
	}

	_ = d.store.LogAction(ctx, "vote.cast", factID, map[string]any{"kind": string(kind)})

	if err := d.resolver.Resolve(ctx, fact.TargetID, fact.Field, now); err != nil {
		return nil, fmt.Errorf("resolving group: %w", err)
	}
	return vote, nil
}

// RemoveVote retracts a previously cast vote and resolves the affected
// group. Retraction requires the credential the vote was cast with.
func (d *Directory) RemoveVote(ctx context.Context, factID int64, kind entities.VoteKind, code string) error {
	if code == "" {
		return errors.New("credential code is required")
	}

	fact, err := d.store.FindFactByID(ctx, factID)
	if err != nil {
		return fmt.Errorf("finding fact: %w", err)
	}
	if fact == nil {
		return ErrFactNotFound
	}

	cred, err := d.store.FindCredentialByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("finding credential: %w", err)
	}
	if cred == nil {
		return ErrVoteNotFound
	}

	vote, err := d.store.FindVote(ctx, factID, kind, cred.ID)
	if err != nil {
		return fmt.Errorf("finding vote: %w", err)
	}
	if vote == nil {
		return ErrVoteNotFound
	}

	if err := d.store.DeleteVote(ctx, vote.ID); err != nil {
		return fmt.Errorf("removing vote: %w", err)
	}

	_ = d.store.LogAction(ctx, "vote.remove", factID, map[string]any{"kind": string(kind)})

	return d.resolver.Resolve(ctx, fact.TargetID, fact.Field, timeNow())
}

// FieldGroup is the display projection of one field's competing claims.
type FieldGroup struct {
	Field entities.FieldName
	Facts []*entities.Fact
}

// ListFacts returns a target's facts grouped by field, each group ordered by
// status rank, then score descending, then fact id.
func (d *Directory) ListFacts(ctx context.Context, targetID string) ([]FieldGroup, error) {
	target, err := d.store.FindTargetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("finding target: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}

	facts, err := d.store.FindFactsByTarget(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("loading facts: %w", err)
	}

	byField := make(map[entities.FieldName][]*entities.Fact)
	for _, f := range facts {
		byField[f.Field] = append(byField[f.Field], f)
	}

	var groups []FieldGroup
	for _, field := range entities.FieldNames {
		group := byField[field]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Status != group[j].Status {
				return group[i].Status.Rank() < group[j].Status.Rank()
			}
			if group[i].Score != group[j].Score {
				return group[i].Score > group[j].Score
			}
			return group[i].ID < group[j].ID
		})
		groups = append(groups, FieldGroup{Field: field, Facts: group})
	}
	return groups, nil
}

// ResolveGroup recomputes one (target, field) group. Maintenance entry point.
func (d *Directory) ResolveGroup(ctx context.Context, targetID string, field entities.FieldName) error {
	if !field.Valid() {
		return fmt.Errorf("unknown field %q", field)
	}
	return d.resolver.Resolve(ctx, targetID, field, timeNow())
}

// ResolveAll recomputes every (target, field) group and returns how many
// groups were processed. Maintenance entry point.
func (d *Directory) ResolveAll(ctx context.Context) (int, error) {
	groups, err := d.store.ListGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing groups: %w", err)
	}
	now := timeNow()
	for _, g := range groups {
		if err := d.resolver.Resolve(ctx, g.TargetID, g.Field, now); err != nil {
			return 0, fmt.Errorf("resolving %s/%s: %w", g.TargetID, g.Field, err)
		}
	}
	return len(groups), nil
}

// SyncCredential records a credential's classification as delivered by an
// external identity check, creating the credential if the code is unseen.
func (d *Directory) SyncCredential(ctx context.Context, code string, status entities.CredentialStatus, trust float64, ownerTargetID string) (*entities.Credential, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown credential status %q", status)
	}
	if ownerTargetID != "" {
		owner, err := d.store.FindTargetByID(ctx, ownerTargetID)
		if err != nil {
			return nil, fmt.Errorf("finding owner target: %w", err)
		}
		if owner == nil {
			return nil, ErrTargetNotFound
		}
	}

	cred, err := d.store.FindOrCreateCredential(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("finding credential: %w", err)
	}
	cred.Status = status
	cred.TrustWeight = trust
	cred.OwnerTargetID = ownerTargetID
	if status != entities.CredentialRevoked {
		cred.RevokedAt = nil
	}
	if err := d.store.SaveCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("saving credential: %w", err)
	}
	return cred, nil
}

// RevokeCredential marks a credential revoked as of now. Votes it cast
// before this moment keep their weight.
func (d *Directory) RevokeCredential(ctx context.Context, code string) (*entities.Credential, error) {
	cred, err := d.store.FindCredentialByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("finding credential: %w", err)
	}
	if cred == nil {
		return nil, fmt.Errorf("credential not found: %s", code)
	}
	now := timeNow()
	cred.Status = entities.CredentialRevoked
	cred.RevokedAt = &now
	if err := d.store.SaveCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("saving credential: %w", err)
	}
	return cred, nil
}

// credentialFor resolves a contributor code to a credential, creating one
// lazily for unseen codes. An empty code is anonymous.
func (d *Directory) credentialFor(ctx context.Context, code string) (*entities.Credential, error) {
	if code == "" {
		return nil, nil
	}
	cred, err := d.store.FindOrCreateCredential(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("finding credential: %w", err)
	}
	return cred, nil
}

func oppositeKind(k entities.VoteKind) (entities.VoteKind, bool) {
	switch k {
	case entities.VoteUpvoted:
		return entities.VoteDownvoted, true
	case entities.VoteDownvoted:
		return entities.VoteUpvoted, true
	}
	return "", false
}
