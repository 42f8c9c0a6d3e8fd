package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkrendel/attest/internal/domain/entities"
)

func newTestDirectory(store *mockStore) *Directory {
	return NewDirectory(store, NewResolver(store))
}

func TestDirectoryCreateTarget(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	directory := newTestDirectory(store)

	t.Run("creates a target with a fresh id", func(t *testing.T) {
		target, err := directory.CreateTarget(ctx, "Ada Lovelace")
		require.NoError(t, err)
		assert.NotEmpty(t, target.ID)
		assert.Equal(t, "Ada Lovelace", target.Name)
		assert.Equal(t, target, store.targets[target.ID])
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := directory.CreateTarget(ctx, "")
		assert.Error(t, err)
	})
}

func TestDirectoryCreateFact(t *testing.T) {
	ctx := context.Background()

	t.Run("records the claim with its added vote and resolves", func(t *testing.T) {
		store := newMockStore()
		store.addTarget("t1", "Ada")
		store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
		directory := newTestDirectory(store)

		fact, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ada@example.com", "code-a")
		require.NoError(t, err)

		assert.Equal(t, "cred-a", fact.AuthorID)
		assert.Equal(t, entities.FactTrusted, fact.Status)
		assert.InDelta(t, 1.0, fact.Score, 1e-9)

		votes, err := store.FindVotesByFact(ctx, fact.ID)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, entities.VoteAdded, votes[0].Kind)
		assert.Equal(t, "cred-a", votes[0].CredentialID)

		log, err := store.FindAuditLog(ctx, fact.ID)
		require.NoError(t, err)
		require.Len(t, log, 1)
		assert.Equal(t, "fact.create", log[0].Action)
	})

	t.Run("anonymous claims stay untrusted", func(t *testing.T) {
		store := newMockStore()
		store.addTarget("t1", "Ada")
		directory := newTestDirectory(store)

		fact, err := directory.CreateFact(ctx, "t1", entities.FieldCity, "Berlin", "")
		require.NoError(t, err)

		assert.Empty(t, fact.AuthorID)
		assert.Equal(t, entities.FactUntrusted, fact.Status)
		assert.InDelta(t, 0.1, fact.Score, 1e-9)
	})

	t.Run("re-proposing the same value is a no-op", func(t *testing.T) {
		store := newMockStore()
		store.addTarget("t1", "Ada")
		store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
		directory := newTestDirectory(store)

		first, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ada@example.com", "code-a")
		require.NoError(t, err)
		second, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ADA@EXAMPLE.COM", "")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, store.votes, 1)
		assert.Len(t, store.facts, 1)
	})

	t.Run("rejects unknown targets and fields", func(t *testing.T) {
		store := newMockStore()
		store.addTarget("t1", "Ada")
		directory := newTestDirectory(store)

		_, err := directory.CreateFact(ctx, "missing", entities.FieldEmail, "x@example.com", "")
		assert.ErrorIs(t, err, ErrTargetNotFound)

		_, err = directory.CreateFact(ctx, "t1", "nickname", "ada", "")
		assert.Error(t, err)

		_, err = directory.CreateFact(ctx, "t1", entities.FieldEmail, "", "")
		assert.Error(t, err)
	})
}

func TestDirectoryCastVote(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*mockStore, *Directory, *entities.Fact) {
		t.Helper()
		store := newMockStore()
		store.addTarget("t1", "Ada")
		store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
		store.addCredential("cred-b", "code-b", entities.CredentialValid, 1.0, "")
		directory := newTestDirectory(store)
		fact, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ada@example.com", "code-a")
		require.NoError(t, err)
		return store, directory, fact
	}

	t.Run("appends the vote and re-resolves", func(t *testing.T) {
		store, directory, fact := setup(t)

		vote, err := directory.CastVote(ctx, fact.ID, entities.VoteUpvoted, "code-b")
		require.NoError(t, err)
		assert.Equal(t, "cred-b", vote.CredentialID)

		resolved, err := store.FindFactByID(ctx, fact.ID)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, resolved.Score, 1e-9)
		assert.Equal(t, entities.FactTrusted, resolved.Status)
	})

	t.Run("an identical repeat vote is a no-op", func(t *testing.T) {
		store, directory, fact := setup(t)

		first, err := directory.CastVote(ctx, fact.ID, entities.VoteUpvoted, "code-b")
		require.NoError(t, err)
		second, err := directory.CastVote(ctx, fact.ID, entities.VoteUpvoted, "code-b")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, store.votes, 2)
	})

	t.Run("an opposite vote replaces the earlier one", func(t *testing.T) {
		store, directory, fact := setup(t)

		up, err := directory.CastVote(ctx, fact.ID, entities.VoteUpvoted, "code-b")
		require.NoError(t, err)
		_, err = directory.CastVote(ctx, fact.ID, entities.VoteDownvoted, "code-b")
		require.NoError(t, err)

		_, stillThere := store.votes[up.ID]
		assert.False(t, stillThere)

		resolved, err := store.FindFactByID(ctx, fact.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, resolved.Score, 1e-9)
		assert.Equal(t, entities.FactHidden, resolved.Status)
	})

	t.Run("rejects unknown facts and uncastable kinds", func(t *testing.T) {
		_, directory, fact := setup(t)

		_, err := directory.CastVote(ctx, fact.ID+99, entities.VoteUpvoted, "code-b")
		assert.ErrorIs(t, err, ErrFactNotFound)

		_, err = directory.CastVote(ctx, fact.ID, entities.VoteAdded, "code-b")
		assert.Error(t, err)
	})
}

func TestDirectoryRemoveVote(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*mockStore, *Directory, *entities.Fact) {
		t.Helper()
		store := newMockStore()
		store.addTarget("t1", "Ada")
		store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
		store.addCredential("cred-b", "code-b", entities.CredentialValid, 1.0, "")
		directory := newTestDirectory(store)
		fact, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ada@example.com", "code-a")
		require.NoError(t, err)
		_, err = directory.CastVote(ctx, fact.ID, entities.VoteDownvoted, "code-b")
		require.NoError(t, err)
		return store, directory, fact
	}

	t.Run("retracts the vote and re-resolves", func(t *testing.T) {
		store, directory, fact := setup(t)

		require.NoError(t, directory.RemoveVote(ctx, fact.ID, entities.VoteDownvoted, "code-b"))

		resolved, err := store.FindFactByID(ctx, fact.ID)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, resolved.Score, 1e-9)
		assert.Equal(t, entities.FactTrusted, resolved.Status)
	})

	t.Run("requires the casting credential", func(t *testing.T) {
		_, directory, fact := setup(t)

		err := directory.RemoveVote(ctx, fact.ID, entities.VoteDownvoted, "")
		assert.Error(t, err)

		err = directory.RemoveVote(ctx, fact.ID, entities.VoteDownvoted, "unknown-code")
		assert.ErrorIs(t, err, ErrVoteNotFound)

		err = directory.RemoveVote(ctx, fact.ID, entities.VoteUpvoted, "code-b")
		assert.ErrorIs(t, err, ErrVoteNotFound)
	})

	t.Run("rejects unknown facts", func(t *testing.T) {
		_, directory, fact := setup(t)

		err := directory.RemoveVote(ctx, fact.ID+99, entities.VoteDownvoted, "code-b")
		assert.ErrorIs(t, err, ErrFactNotFound)
	})
}

func TestDirectoryListFacts(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.addTarget("t1", "Ada")
	directory := newTestDirectory(store)

	hidden := store.addFact("t1", entities.FieldEmail, "ada@old.example", "")
	hidden.Status = entities.FactHidden
	hidden.Score = -0.9
	trusted := store.addFact("t1", entities.FieldEmail, "ada@example.com", "")
	trusted.Status = entities.FactTrusted
	trusted.Score = 2.0
	untrusted := store.addFact("t1", entities.FieldEmail, "ada@alt.example", "")
	untrusted.Score = 0.1
	city := store.addFact("t1", entities.FieldCity, "Berlin", "")

	groups, err := directory.ListFacts(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Field order follows the catalog, not insertion order.
	assert.Equal(t, entities.FieldEmail, groups[0].Field)
	require.Len(t, groups[0].Facts, 3)
	assert.Equal(t, trusted.ID, groups[0].Facts[0].ID)
	assert.Equal(t, untrusted.ID, groups[0].Facts[1].ID)
	assert.Equal(t, hidden.ID, groups[0].Facts[2].ID)

	assert.Equal(t, entities.FieldCity, groups[1].Field)
	require.Len(t, groups[1].Facts, 1)
	assert.Equal(t, city.ID, groups[1].Facts[0].ID)

	_, err = directory.ListFacts(ctx, "missing")
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestDirectoryResolveAll(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.addTarget("t1", "Ada")
	store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
	directory := newTestDirectory(store)

	_, err := directory.CreateFact(ctx, "t1", entities.FieldEmail, "ada@example.com", "code-a")
	require.NoError(t, err)
	_, err = directory.CreateFact(ctx, "t1", entities.FieldCity, "Berlin", "code-a")
	require.NoError(t, err)

	count, err := directory.ResolveAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDirectorySyncCredential(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.addTarget("t1", "Ada")
	directory := newTestDirectory(store)

	t.Run("creates unseen codes and records the classification", func(t *testing.T) {
		cred, err := directory.SyncCredential(ctx, "fresh-code", entities.CredentialValid, 2.0, "t1")
		require.NoError(t, err)

		assert.Equal(t, entities.CredentialValid, cred.Status)
		assert.InDelta(t, 2.0, cred.TrustWeight, 1e-9)
		assert.Equal(t, "t1", cred.OwnerTargetID)
		assert.Nil(t, cred.RevokedAt)
	})

	t.Run("re-validating clears the revocation time", func(t *testing.T) {
		cred, err := directory.RevokeCredential(ctx, "fresh-code")
		require.NoError(t, err)
		require.NotNil(t, cred.RevokedAt)

		cred, err = directory.SyncCredential(ctx, "fresh-code", entities.CredentialValid, 1.0, "")
		require.NoError(t, err)
		assert.Nil(t, cred.RevokedAt)
	})

	t.Run("rejects unknown statuses and owners", func(t *testing.T) {
		_, err := directory.SyncCredential(ctx, "fresh-code", "golden", 1.0, "")
		assert.Error(t, err)

		_, err = directory.SyncCredential(ctx, "fresh-code", entities.CredentialValid, 1.0, "missing")
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})
}

func TestDirectoryRevokeCredential(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.addTarget("t1", "Ada")
	store.addCredential("cred-a", "code-a", entities.CredentialValid, 1.0, "")
	directory := newTestDirectory(store)

	before := time.Now()
	cred, err := directory.RevokeCredential(ctx, "code-a")
	require.NoError(t, err)

	assert.Equal(t, entities.CredentialRevoked, cred.Status)
	require.NotNil(t, cred.RevokedAt)
	assert.False(t, cred.RevokedAt.Before(before))

	_, err = directory.RevokeCredential(ctx, "unknown-code")
	assert.Error(t, err)
}
