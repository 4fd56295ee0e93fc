package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/provider"
)

// BulletState is the proposal lifecycle state of one bullet.
type BulletState string

// Proposal lifecycle states.
const (
	// StateStable means the bullet shows committed content with no pending
	// rewrite.
	StateStable BulletState = "stable"
	// StateOptimizing means a rewrite request is in flight.
	StateOptimizing BulletState = "optimizing"
	// StateProposed means a candidate rewrite awaits accept or discard.
	StateProposed BulletState = "proposed"
)

// ProposalManager runs the per-bullet propose/accept/discard lifecycle for
// AI-suggested rewrites. A pending proposal never touches the bullet's
// committed content; the bullet keeps showing its last-committed text until
// the proposal is accepted. Proposals for different bullets are independent.
type ProposalManager struct {
	store    *Store
	analyzer provider.Analyzer
	scorer   *RelevanceScorer
	log      *logrus.Logger

	mu         sync.Mutex
	proposals  map[string]string
	optimizing map[string]int
}

// NewProposalManager creates the proposal layer on top of the session store.
// It subscribes to the store so manual edits and wholesale profile
// replacements clear affected proposals.
func NewProposalManager(store *Store, analyzer provider.Analyzer, scorer *RelevanceScorer, log *logrus.Logger) *ProposalManager {
	if log == nil {
		log = logrus.New()
	}
	m := &ProposalManager{
		store:      store,
		analyzer:   analyzer,
		scorer:     scorer,
		log:        log,
		proposals:  make(map[string]string),
		optimizing: make(map[string]int),
	}
	store.Subscribe(m.onStoreEvent)
	return m
}

// onStoreEvent drops proposals invalidated by content mutations: a manual
// edit clears that bullet's proposal, a wholesale tailored replacement
// clears everything.
func (m *ProposalManager) onStoreEvent(event Event) {
	switch event.Type {
	case EventBulletEdited:
		m.mu.Lock()
		delete(m.proposals, event.BulletID)
		m.mu.Unlock()
	case EventTailoredReplaced:
		m.mu.Lock()
		m.proposals = make(map[string]string)
		m.mu.Unlock()
	default:
	}
}

// Restore reloads pending proposals from a persisted session. Bullets absent
// from the current Tailored Profile are skipped.
func (m *ProposalManager) Restore(proposals map[string]string) {
	tailored := m.store.Tailored()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, text := range proposals {
		if _, bullet := tailored.FindBullet(id); bullet == nil {
			continue
		}
		m.proposals[id] = text
	}
}

// Pending returns a copy of all pending proposals keyed by bullet id.
func (m *ProposalManager) Pending() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.proposals))
	for id, text := range m.proposals {
		out[id] = text
	}
	return out
}

// State reports the lifecycle state of one bullet.
func (m *ProposalManager) State(bulletID string) BulletState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.optimizing[bulletID] > 0 {
		return StateOptimizing
	}
	if _, ok := m.proposals[bulletID]; ok {
		return StateProposed
	}
	return StateStable
}

// Proposal returns the pending candidate text for a bullet, if any.
func (m *ProposalManager) Proposal(bulletID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.proposals[bulletID]
	return text, ok
}

// Optimize requests a rewrite of the bullet's current content against the
// active job text and stores the candidate as a pending proposal. A no-op
// without job text. On provider failure the bullet is left exactly as it
// was: no proposal, state Stable. A result arriving after the bullet's
// content changed is dropped.
func (m *ProposalManager) Optimize(ctx context.Context, bulletID string) error {
	job := m.store.Job()
	if job.Text == "" {
		return ErrNoJobText
	}

	content, gen, err := m.store.BulletSnapshot(bulletID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.optimizing[bulletID]++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.optimizing[bulletID]--
		if m.optimizing[bulletID] <= 0 {
			delete(m.optimizing, bulletID)
		}
		m.mu.Unlock()
	}()

	candidate, err := m.analyzer.OptimizeBullet(ctx, content, job.Text)
	if err != nil {
		// Safe fallback: the candidate equals the original content, which
		// is the same as proposing nothing.
		m.log.WithError(err).WithField("bullet", bulletID).Warn("optimize failed, keeping original")
		return nil
	}

	if m.store.Generation(bulletID) != gen {
		m.log.WithField("bullet", bulletID).Debug("dropping stale optimize result")
		return nil
	}
	if candidate == content {
		return nil
	}

	m.mu.Lock()
	m.proposals[bulletID] = candidate
	m.mu.Unlock()
	return nil
}

// Accept commits the pending candidate as the bullet's content, clears the
// proposal and the bullet's relevance score, then requests a fresh
// single-bullet score. A manual edit between commit and score arrival wins:
// the generation check drops the stale score.
func (m *ProposalManager) Accept(ctx context.Context, bulletID string) error {
	m.mu.Lock()
	candidate, ok := m.proposals[bulletID]
	m.mu.Unlock()
	if !ok {
		return ErrNoProposal
	}

	// EditBullet clears the score, bumps the generation, and notifies
	// subscribers; our own subscription removes the proposal entry.
	if err := m.store.EditBullet(bulletID, candidate); err != nil {
		return err
	}

	if m.scorer != nil {
		if err := m.scorer.ScoreOne(ctx, bulletID); err != nil {
			// Scoring is enrichment; the accepted text stands either way.
			m.log.WithError(err).WithField("bullet", bulletID).Warn("rescore after accept failed")
		}
	}
	return nil
}

// Discard drops the pending candidate and leaves the bullet's content
// untouched.
func (m *ProposalManager) Discard(bulletID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.proposals[bulletID]; !ok {
		return ErrNoProposal
	}
	delete(m.proposals, bulletID)
	return nil
}

// ManualEdit applies a user edit to the bullet. The edit is a hard
// interrupt: the pending proposal is cleared and any in-flight optimize or
// score result for the old content will be dropped on arrival.
func (m *ProposalManager) ManualEdit(bulletID, content string) error {
	return m.store.EditBullet(bulletID, content)
}
