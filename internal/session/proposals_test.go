package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/provider"
)

func newTestProposals(analyzer *fakeAnalyzer) (*Store, *ProposalManager) {
	store := newTestStore()
	store.SetJobDetails("Acme", "Engineer", "We need a Go engineer.")
	scorer := NewRelevanceScorer(store, analyzer, testLogger())
	return store, NewProposalManager(store, analyzer, scorer, testLogger())
}

func TestOptimizeStoresProposalWithoutTouchingContent(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(bullet, _ string) (string, error) {
			return "Sharper version of: " + bullet, nil
		},
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	_, original := store.Tailored().FindBullet(bulletID)

	require.NoError(t, manager.Optimize(context.Background(), bulletID))

	proposal, ok := manager.Proposal(bulletID)
	require.True(t, ok)
	assert.Equal(t, "Sharper version of: "+original.Content, proposal)
	assert.Equal(t, StateProposed, manager.State(bulletID))

	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, original.Content, bullet.Content,
		"a pending proposal must not touch committed content")
}

func TestOptimizeRequiresJobText(t *testing.T) {
	store := newTestStore()
	store.SetJobDetails("Acme", "Engineer", "")
	manager := NewProposalManager(store, &fakeAnalyzer{}, nil, testLogger())

	err := manager.Optimize(context.Background(), firstBulletID(store))
	assert.ErrorIs(t, err, ErrNoJobText)
}

func TestOptimizeFailureLeavesBulletStable(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) {
			return "", errors.New("provider unavailable")
		},
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	_, original := store.Tailored().FindBullet(bulletID)

	require.NoError(t, manager.Optimize(context.Background(), bulletID),
		"provider failure is absorbed, not surfaced as a session error")

	_, ok := manager.Proposal(bulletID)
	assert.False(t, ok)
	assert.Equal(t, StateStable, manager.State(bulletID))
	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, original.Content, bullet.Content)
}

func TestOptimizeIdenticalCandidateMakesNoProposal(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(bullet, _ string) (string, error) { return bullet, nil },
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)

	require.NoError(t, manager.Optimize(context.Background(), bulletID))
	assert.Equal(t, StateStable, manager.State(bulletID))
}

func TestAcceptCommitsCandidateAndRescores(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) { return "Accepted rewrite", nil },
		scoreOne: func(id, content, _ string) (*provider.BulletScore, error) {
			return &provider.BulletScore{ID: id, Score: 88, Reason: "strong match"}, nil
		},
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	require.NoError(t, manager.Optimize(context.Background(), bulletID))

	require.NoError(t, manager.Accept(context.Background(), bulletID))

	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, "Accepted rewrite", bullet.Content)
	assert.Equal(t, StateStable, manager.State(bulletID))
	require.NotNil(t, bullet.RelevanceScore, "accepted text gets a fresh score")
	assert.Equal(t, 88, *bullet.RelevanceScore)
}

func TestAcceptRescoreFailureStillCommits(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) { return "Accepted rewrite", nil },
		scoreOne: func(string, string, string) (*provider.BulletScore, error) {
			return nil, errors.New("provider unavailable")
		},
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	require.NoError(t, manager.Optimize(context.Background(), bulletID))

	require.NoError(t, manager.Accept(context.Background(), bulletID))

	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, "Accepted rewrite", bullet.Content)
	assert.Nil(t, bullet.RelevanceScore, "the accepted bullet stays unscored until rescored")
}

func TestAcceptWithoutProposal(t *testing.T) {
	store, manager := newTestProposals(&fakeAnalyzer{})
	err := manager.Accept(context.Background(), firstBulletID(store))
	assert.ErrorIs(t, err, ErrNoProposal)
}

func TestDiscardKeepsCommittedContent(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) { return "Discarded rewrite", nil },
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	_, original := store.Tailored().FindBullet(bulletID)
	require.NoError(t, manager.Optimize(context.Background(), bulletID))

	require.NoError(t, manager.Discard(bulletID))

	assert.Equal(t, StateStable, manager.State(bulletID))
	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, original.Content, bullet.Content)

	assert.ErrorIs(t, manager.Discard(bulletID), ErrNoProposal)
}

func TestManualEditClearsProposal(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) { return "Pending rewrite", nil },
	}
	store, manager := newTestProposals(analyzer)
	bulletID := firstBulletID(store)
	require.NoError(t, manager.Optimize(context.Background(), bulletID))
	require.Equal(t, StateProposed, manager.State(bulletID))

	require.NoError(t, manager.ManualEdit(bulletID, "User typed this"))

	assert.Equal(t, StateStable, manager.State(bulletID))
	_, ok := manager.Proposal(bulletID)
	assert.False(t, ok, "a manual edit is a hard interrupt on the proposal")
	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, "User typed this", bullet.Content)
}

func TestStaleOptimizeResultDropped(t *testing.T) {
	var store *Store
	var bulletID string
	analyzer := &fakeAnalyzer{
		optimize: func(string, string) (string, error) {
			// The user edits the bullet while the rewrite is in flight.
			if err := store.EditBullet(bulletID, "Edited mid-flight"); err != nil {
				return "", err
			}
			return "Rewrite of the old text", nil
		},
	}
	store, manager := newTestProposals(analyzer)
	bulletID = firstBulletID(store)

	require.NoError(t, manager.Optimize(context.Background(), bulletID))

	_, ok := manager.Proposal(bulletID)
	assert.False(t, ok, "a result for superseded content must be dropped")
	_, bullet := store.Tailored().FindBullet(bulletID)
	assert.Equal(t, "Edited mid-flight", bullet.Content)
}

func TestTailoredReplacementClearsAllProposals(t *testing.T) {
	analyzer := &fakeAnalyzer{
		optimize: func(bullet, _ string) (string, error) { return "Rewrite: " + bullet, nil },
	}
	store, manager := newTestProposals(analyzer)
	first := store.Tailored().Experiences[0].Bullets[0].ID
	second := store.Tailored().Experiences[1].Bullets[0].ID
	require.NoError(t, manager.Optimize(context.Background(), first))
	require.NoError(t, manager.Optimize(context.Background(), second))

	require.NoError(t, store.ResetTailoredFromMaster(true))

	assert.Equal(t, StateStable, manager.State(first))
	assert.Equal(t, StateStable, manager.State(second))
}
