package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/ports"
)

// mockStore is an in-memory ports.Store for testing the services.
type mockStore struct {
	targets     map[string]*entities.Target
	credentials map[string]*entities.Credential
	facts       map[int64]*entities.Fact
	votes       map[int64]*entities.Vote
	audit       []entities.AuditEntry

	nextFactID int64
	nextVoteID int64

	// resolutionUpdates counts UpdateFactResolution calls, for idempotence
	// assertions.
	resolutionUpdates int
}

func newMockStore() *mockStore {
	return &mockStore{
		targets:     make(map[string]*entities.Target),
		credentials: make(map[string]*entities.Credential),
		facts:       make(map[int64]*entities.Fact),
		votes:       make(map[int64]*entities.Vote),
	}
}

// Test fixture helpers.

func (m *mockStore) addTarget(id, name string) *entities.Target {
	t := &entities.Target{ID: id, Name: name, CreatedAt: time.Now()}
	m.targets[id] = t
	return t
}

func (m *mockStore) addCredential(id, code string, status entities.CredentialStatus, trust float64, owner string) *entities.Credential {
	c := &entities.Credential{
		ID:            id,
		Code:          code,
		Status:        status,
		TrustWeight:   trust,
		OwnerTargetID: owner,
		CreatedAt:     time.Now(),
	}
	m.credentials[id] = c
	return c
}

func (m *mockStore) addFact(targetID string, field entities.FieldName, value, authorID string) *entities.Fact {
	m.nextFactID++
	f := &entities.Fact{
		ID:       m.nextFactID,
		TargetID: targetID,
		AuthorID: authorID,
		Field:    field,
		Value:    value,
		Status:   entities.FactUntrusted,
	}
	m.facts[f.ID] = f
	return f
}

func (m *mockStore) addVote(factID int64, credID string, kind entities.VoteKind, at time.Time) *entities.Vote {
	m.nextVoteID++
	v := &entities.Vote{
		ID:           m.nextVoteID,
		FactID:       factID,
		CredentialID: credID,
		Kind:         kind,
		CreatedAt:    at,
	}
	m.votes[v.ID] = v
	return v
}

// ports.Store implementation.

func (m *mockStore) EnsureSchema(_ context.Context) error { return nil }
func (m *mockStore) Close() error                         { return nil }

func (m *mockStore) SaveTarget(_ context.Context, target *entities.Target) error {
	m.targets[target.ID] = target
	return nil
}

func (m *mockStore) FindTargetByID(_ context.Context, id string) (*entities.Target, error) {
	return m.targets[id], nil
}

func (m *mockStore) ListTargets(_ context.Context, limit, offset int) ([]*entities.Target, error) {
	result := make([]*entities.Target, 0, len(m.targets))
	for _, t := range m.targets {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockStore) CountTargets(_ context.Context) (int, error) {
	return len(m.targets), nil
}

func (m *mockStore) SaveCredential(_ context.Context, cred *entities.Credential) error {
	m.credentials[cred.ID] = cred
	return nil
}

func (m *mockStore) FindCredentialByID(_ context.Context, id string) (*entities.Credential, error) {
	return m.credentials[id], nil
}

func (m *mockStore) FindCredentialByCode(_ context.Context, code string) (*entities.Credential, error) {
	for _, c := range m.credentials {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockStore) FindOrCreateCredential(_ context.Context, code string) (*entities.Credential, error) {
	for _, c := range m.credentials {
		if c.Code == code {
			return c, nil
		}
	}
	c := &entities.Credential{
		ID:          "cred-" + code,
		Code:        code,
		Status:      entities.CredentialNonexistent,
		TrustWeight: entities.DefaultTrustWeight,
		CreatedAt:   time.Now(),
	}
	m.credentials[c.ID] = c
	return c, nil
}

func (m *mockStore) FindCredentialsByIDs(_ context.Context, ids []string) (map[string]*entities.Credential, error) {
	result := make(map[string]*entities.Credential, len(ids))
	for _, id := range ids {
		if c, ok := m.credentials[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

func (m *mockStore) CreateFact(_ context.Context, fact *entities.Fact) error {
	m.nextFactID++
	fact.ID = m.nextFactID
	m.facts[fact.ID] = fact
	return nil
}

func (m *mockStore) FindFactByID(_ context.Context, id int64) (*entities.Fact, error) {
	return m.facts[id], nil
}

func (m *mockStore) FindFactByValue(_ context.Context, targetID string, field entities.FieldName, value string) (*entities.Fact, error) {
	for _, f := range m.sortedFacts() {
		if f.TargetID == targetID && f.Field == field && strings.EqualFold(f.Value, value) {
			return f, nil
		}
	}
	return nil, nil
}

func (m *mockStore) FindFactsByGroup(_ context.Context, targetID string, field entities.FieldName) ([]*entities.Fact, error) {
	var result []*entities.Fact
	for _, f := range m.sortedFacts() {
		if f.TargetID == targetID && f.Field == field {
			result = append(result, f)
		}
	}
	return result, nil
}

func (m *mockStore) FindFactsByTarget(_ context.Context, targetID string) ([]*entities.Fact, error) {
	var result []*entities.Fact
	for _, f := range m.sortedFacts() {
		if f.TargetID == targetID {
			result = append(result, f)
		}
	}
	return result, nil
}

func (m *mockStore) AllFacts(_ context.Context) ([]*entities.Fact, error) {
	return m.sortedFacts(), nil
}

func (m *mockStore) ListGroups(_ context.Context) ([]ports.FactGroup, error) {
	seen := make(map[string]bool)
	var groups []ports.FactGroup
	for _, f := range m.sortedFacts() {
		key := f.TargetID + "/" + string(f.Field)
		if seen[key] {
			continue
		}
		seen[key] = true
		groups = append(groups, ports.FactGroup{TargetID: f.TargetID, Field: f.Field})
	}
	return groups, nil
}

func (m *mockStore) UpdateFactResolution(_ context.Context, factID int64, status entities.FactStatus, score float64, statusUpdatedAt time.Time) error {
	f, ok := m.facts[factID]
	if !ok {
		return fmt.Errorf("fact not found: %d", factID)
	}
	f.Status = status
	f.Score = score
	f.StatusUpdatedAt = statusUpdatedAt
	m.resolutionUpdates++
	return nil
}

func (m *mockStore) CreateVote(_ context.Context, vote *entities.Vote) error {
	m.nextVoteID++
	vote.ID = m.nextVoteID
	m.votes[vote.ID] = vote
	return nil
}

func (m *mockStore) FindVotesByFact(_ context.Context, factID int64) ([]*entities.Vote, error) {
	var result []*entities.Vote
	for _, v := range m.sortedVotes() {
		if v.FactID == factID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *mockStore) FindVotesByGroup(_ context.Context, targetID string, field entities.FieldName) ([]*entities.Vote, error) {
	var result []*entities.Vote
	for _, v := range m.sortedVotes() {
		f, ok := m.facts[v.FactID]
		if ok && f.TargetID == targetID && f.Field == field {
			result = append(result, v)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].FactID != result[j].FactID {
			return result[i].FactID < result[j].FactID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) FindVote(_ context.Context, factID int64, kind entities.VoteKind, credentialID string) (*entities.Vote, error) {
	for _, v := range m.sortedVotes() {
		if v.FactID == factID && v.Kind == kind && v.CredentialID == credentialID {
			return v, nil
		}
	}
	return nil, nil
}

func (m *mockStore) DeleteVote(_ context.Context, voteID int64) error {
	if _, ok := m.votes[voteID]; !ok {
		return fmt.Errorf("vote not found: %d", voteID)
	}
	delete(m.votes, voteID)
	return nil
}

func (m *mockStore) ApplyRepairs(_ context.Context, factID int64, actions []entities.RepairAction) error {
	for _, action := range actions {
		v, ok := m.votes[action.VoteID]
		if !ok || v.FactID != factID {
			continue
		}
		switch action.Op {
		case entities.RepairDeleteVote:
			delete(m.votes, action.VoteID)
		case entities.RepairRewriteKind:
			v.Kind = action.NewKind
		}
	}
	return nil
}

func (m *mockStore) LogAction(_ context.Context, action string, factID int64, details map[string]any) error {
	m.audit = append(m.audit, entities.AuditEntry{
		ID:        int64(len(m.audit) + 1),
		Action:    action,
		FactID:    factID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *mockStore) FindAuditLog(_ context.Context, factID int64) ([]entities.AuditEntry, error) {
	var result []entities.AuditEntry
	for _, e := range m.audit {
		if e.FactID == factID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStore) sortedFacts() []*entities.Fact {
	result := make([]*entities.Fact, 0, len(m.facts))
	for _, f := range m.facts {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockStore) sortedVotes() []*entities.Vote {
	result := make([]*entities.Vote, 0, len(m.votes))
	for _, v := range m.votes {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
