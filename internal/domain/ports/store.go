// Package ports defines the interfaces the domain layer depends on.
package ports

import (
	"context"
	"time"

	"github.com/tkrendel/attest/internal/domain/entities"
)

// FactGroup identifies one (target, field) resolution group.
type FactGroup struct {
	TargetID string
	Field    entities.FieldName
}

// Store defines the persistence interface for targets, credentials, facts and
// votes. Vote append order must be preserved: group and per-fact queries
// return votes in ascending id order, which the resolver relies on for
// deterministic grouping and tie-breaking.
type Store interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Target operations

	// SaveTarget saves a target.
	SaveTarget(ctx context.Context, target *entities.Target) error

	// FindTargetByID finds a target by its ID.
	FindTargetByID(ctx context.Context, id string) (*entities.Target, error)

	// ListTargets lists targets ordered by name with pagination.
	ListTargets(ctx context.Context, limit, offset int) ([]*entities.Target, error)

	// CountTargets returns the total number of targets.
	CountTargets(ctx context.Context) (int, error)

	// Credential operations

	// SaveCredential saves or updates a credential.
	SaveCredential(ctx context.Context, cred *entities.Credential) error

	// FindCredentialByID finds a credential by its ID.
	FindCredentialByID(ctx context.Context, id string) (*entities.Credential, error)

	// FindCredentialByCode finds a credential by its unique code.
	FindCredentialByCode(ctx context.Context, code string) (*entities.Credential, error)

	// FindOrCreateCredential finds a credential by code or lazily creates it
	// in the nonexistent state with the default trust weight.
	FindOrCreateCredential(ctx context.Context, code string) (*entities.Credential, error)

	// FindCredentialsByIDs finds multiple credentials in a single query,
	// keyed by ID. Missing IDs are simply absent from the result.
	FindCredentialsByIDs(ctx context.Context, ids []string) (map[string]*entities.Credential, error)

	// Fact operations

	// CreateFact inserts a new fact and assigns its ID.
	CreateFact(ctx context.Context, fact *entities.Fact) error

	// FindFactByID finds a fact by its ID.
	FindFactByID(ctx context.Context, id int64) (*entities.Fact, error)

	// FindFactByValue finds a fact by its (target, field, value) key,
	// matching the value case-insensitively.
	FindFactByValue(ctx context.Context, targetID string, field entities.FieldName, value string) (*entities.Fact, error)

	// FindFactsByGroup finds all facts for one (target, field) group,
	// ordered by fact id ascending.
	FindFactsByGroup(ctx context.Context, targetID string, field entities.FieldName) ([]*entities.Fact, error)

	// FindFactsByTarget finds all facts for a target.
	FindFactsByTarget(ctx context.Context, targetID string) ([]*entities.Fact, error)

	// AllFacts returns every fact, ordered by id ascending.
	AllFacts(ctx context.Context) ([]*entities.Fact, error)

	// ListGroups returns every distinct (target, field) group.
	ListGroups(ctx context.Context) ([]FactGroup, error)

	// UpdateFactResolution persists the derived status, score and status
	// timestamp of a fact. Nothing else on a fact is ever updated.
	UpdateFactResolution(ctx context.Context, factID int64, status entities.FactStatus, score float64, statusUpdatedAt time.Time) error

	// Vote operations

	// CreateVote appends a vote and assigns its ID.
	CreateVote(ctx context.Context, vote *entities.Vote) error

	// FindVotesByFact finds all votes on a fact, ordered by id ascending.
	FindVotesByFact(ctx context.Context, factID int64) ([]*entities.Vote, error)

	// FindVotesByGroup finds all votes on facts of one (target, field)
	// group, ordered by (fact id, vote id) ascending.
	FindVotesByGroup(ctx context.Context, targetID string, field entities.FieldName) ([]*entities.Vote, error)

	// FindVote finds the vote matching (fact, kind, author) exactly. An
	// empty credentialID matches anonymous votes.
	FindVote(ctx context.Context, factID int64, kind entities.VoteKind, credentialID string) (*entities.Vote, error)

	// DeleteVote deletes a vote by ID.
	DeleteVote(ctx context.Context, voteID int64) error

	// ApplyRepairs applies the auditor's repair actions to one fact's votes
	// in a single all-or-nothing transaction.
	ApplyRepairs(ctx context.Context, factID int64, actions []entities.RepairAction) error

	// Audit log

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, factID int64, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific fact.
	FindAuditLog(ctx context.Context, factID int64) ([]entities.AuditEntry, error)
}
