// Package handlers contains application-layer handlers bridging the CLI and
// the domain services.
package handlers

import (
	"context"

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/services"
)

// DirectoryHandler handles target, fact and vote operations at the
// application layer.
type DirectoryHandler struct {
	directory *services.Directory
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory *services.Directory) *DirectoryHandler {
	return &DirectoryHandler{
		directory: directory,
	}
}

// TargetListResult contains the result of listing targets.
type TargetListResult struct {
	Targets []*entities.Target `json:"targets"`
	Total   int                `json:"total"`
}

// TargetFactsResult contains a target's facts grouped by field.
type TargetFactsResult struct {
	Target *entities.Target      `json:"target"`
	Groups []services.FieldGroup `json:"groups"`
}

// HandleCreateTarget registers a new target.
func (h *DirectoryHandler) HandleCreateTarget(ctx context.Context, name string) (*entities.Target, error) {
	return h.directory.CreateTarget(ctx, name)
}

// HandleListTargets returns targets with pagination.
func (h *DirectoryHandler) HandleListTargets(ctx context.Context, limit, offset int) (*TargetListResult, error) {
	targets, total, err := h.directory.ListTargets(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &TargetListResult{
		Targets: targets,
		Total:   total,
	}, nil
}

// HandleCreateFact proposes a fact and returns it with its resolved status.
func (h *DirectoryHandler) HandleCreateFact(ctx context.Context, targetID string, field entities.FieldName, value, code string) (*entities.Fact, error) {
	return h.directory.CreateFact(ctx, targetID, field, value, code)
}

// HandleCastVote casts a vote on a fact.
func (h *DirectoryHandler) HandleCastVote(ctx context.Context, factID int64, kind entities.VoteKind, code string) (*entities.Vote, error) {
	return h.directory.CastVote(ctx, factID, kind, code)
}

// HandleRemoveVote retracts a previously cast vote.
func (h *DirectoryHandler) HandleRemoveVote(ctx context.Context, factID int64, kind entities.VoteKind, code string) error {
	return h.directory.RemoveVote(ctx, factID, kind, code)
}

// HandleShowTarget returns a target's facts grouped by field in display
// order.
func (h *DirectoryHandler) HandleShowTarget(ctx context.Context, targetID string) (*TargetFactsResult, error) {
	target, err := h.directory.FindTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	groups, err := h.directory.ListFacts(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return &TargetFactsResult{Target: target, Groups: groups}, nil
}

// HandleResolveGroup recomputes one (target, field) group.
func (h *DirectoryHandler) HandleResolveGroup(ctx context.Context, targetID string, field entities.FieldName) error {
	return h.directory.ResolveGroup(ctx, targetID, field)
}

// HandleResolveAll recomputes every group, returning the group count.
func (h *DirectoryHandler) HandleResolveAll(ctx context.Context) (int, error) {
	return h.directory.ResolveAll(ctx)
}

// HandleSyncCredential records a credential classification.
func (h *DirectoryHandler) HandleSyncCredential(ctx context.Context, code string, status entities.CredentialStatus, trust float64, ownerTargetID string) (*entities.Credential, error) {
	return h.directory.SyncCredential(ctx, code, status, trust, ownerTargetID)
}

// HandleRevokeCredential revokes a credential as of now.
func (h *DirectoryHandler) HandleRevokeCredential(ctx context.Context, code string) (*entities.Credential, error) {
	return h.directory.RevokeCredential(ctx, code)
}
