// Package session implements the tailoring state machine: the profile store
// with its master/tailored synchronization rule, the per-bullet proposal
// lifecycle, the relevance score cache, and the gap analysis workflow.
//
// The session is logically single-writer (one interactive user), but
// provider calls resolve on other goroutines. Correctness against
// out-of-order responses comes from per-bullet edit generations: every
// outgoing request captures the generation of the content it was issued for,
// and a result is applied only if the generation is unchanged. A stale
// result is dropped silently; it is an expected race outcome, not an error.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// EventType identifies a category of store mutation.
type EventType int

// Store mutation events delivered to subscribers.
const (
	// EventMasterReplaced fires when the Master Profile is replaced wholesale.
	EventMasterReplaced EventType = iota
	// EventTailoredReplaced fires when the Tailored Profile is replaced
	// wholesale (auto-sync, reset, or snapshot load).
	EventTailoredReplaced
	// EventJobChanged fires when any job description field changes.
	EventJobChanged
	// EventBulletEdited fires when one bullet's content changes.
	EventBulletEdited
)

// Event describes one store mutation. BulletID is set for EventBulletEdited.
type Event struct {
	Type     EventType
	BulletID string
}

// Store owns the Master Profile, the Tailored Profile, and the active job
// description, and enforces the fork/sync rule between master and tailored.
// All reads return deep copies; all mutation goes through methods.
type Store struct {
	mu          sync.Mutex
	master      *types.Profile
	tailored    *types.Profile
	job         *types.JobDescription
	coverLetter string
	generations map[string]uint64
	subscribers []func(Event)

	kv  storage.KV
	log *logrus.Logger

	persistMu   sync.Mutex
	pendingJSON []byte
	persistWG   sync.WaitGroup
}

// NewStore creates a session store over the given persistence collaborator.
// The store starts with the seed profile; call LoadMaster to restore a
// persisted one.
func NewStore(kv storage.KV, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	master := types.SeedProfile()
	return &Store{
		master:      master,
		tailored:    master.Clone(),
		job:         &types.JobDescription{ID: "job-1"},
		generations: make(map[string]uint64),
		kv:          kv,
		log:         log,
	}
}

// Subscribe registers a callback invoked after every store mutation.
// Callbacks run outside the store lock and must not block.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// LoadMaster restores the persisted Master Profile, if any. An absent key
// keeps the seed profile; a decode failure is surfaced.
func (s *Store) LoadMaster(ctx context.Context) error {
	data, ok, err := s.kv.Get(ctx, storage.KeyMasterProfile)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return err
	}

	s.mu.Lock()
	s.master = &profile
	events := s.syncTailoredLocked()
	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Master returns a deep copy of the Master Profile.
func (s *Store) Master() *types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.master.Clone()
}

// Tailored returns a deep copy of the Tailored Profile.
func (s *Store) Tailored() *types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tailored.Clone()
}

// Job returns a deep copy of the active job description.
func (s *Store) Job() *types.JobDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job.Clone()
}

// CoverLetter returns the current generated cover letter text.
func (s *Store) CoverLetter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coverLetter
}

// SetCoverLetter stores the generated cover letter for later snapshotting.
func (s *Store) SetCoverLetter(text string) {
	s.mu.Lock()
	s.coverLetter = text
	s.mu.Unlock()
}

// SetMaster replaces the Master Profile wholesale (user edit or import
// merge), schedules a persistence write, and re-syncs the Tailored Profile
// when no job is active.
func (s *Store) SetMaster(p *types.Profile) {
	s.mu.Lock()
	s.master = p.Clone()
	events := append([]Event{{Type: EventMasterReplaced}}, s.syncTailoredLocked()...)
	s.schedulePersistLocked()
	s.mu.Unlock()
	s.emit(events...)
}

// SetTailored replaces the Tailored Profile wholesale. Used by snapshot load
// and reset; in-flight provider results for old content become stale.
func (s *Store) SetTailored(p *types.Profile) {
	s.mu.Lock()
	s.replaceTailoredLocked(p.Clone())
	s.mu.Unlock()
	s.emit(Event{Type: EventTailoredReplaced})
}

// SetJobDetails updates the job's company, title, and text. While all three
// are empty the Tailored Profile keeps tracking the Master Profile; the
// first non-empty value is the fork point and synchronization stops.
func (s *Store) SetJobDetails(company, title, text string) {
	s.mu.Lock()
	s.job.Company = company
	s.job.Title = title
	s.job.Text = text
	events := append([]Event{{Type: EventJobChanged}}, s.syncTailoredLocked()...)
	s.mu.Unlock()
	s.emit(events...)
}

// SetJobKeywords stores extracted keywords on the job. Keywords alone do not
// make the job non-empty.
func (s *Store) SetJobKeywords(keywords []string) {
	s.mu.Lock()
	s.job.Keywords = append([]string(nil), keywords...)
	s.mu.Unlock()
	s.emit(Event{Type: EventJobChanged})
}

// ResetTailoredFromMaster overwrites the Tailored Profile with a fresh copy
// of the Master Profile. Destructive; requires confirmed=true.
func (s *Store) ResetTailoredFromMaster(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	s.mu.Lock()
	s.replaceTailoredLocked(s.master.Clone())
	s.mu.Unlock()
	s.emit(Event{Type: EventTailoredReplaced})
	return nil
}

// LoadSnapshot rehydrates the session from a stored application record:
// Tailored Profile, job, and cover letter are replaced wholesale with the
// snapshot's copies. Destructive; requires confirmed=true.
func (s *Store) LoadSnapshot(snap *types.Snapshot, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	clone := snap.Clone()
	s.mu.Lock()
	s.replaceTailoredLocked(clone.Profile)
	s.job = clone.Job
	s.coverLetter = clone.CoverLetter
	s.mu.Unlock()
	s.emit(Event{Type: EventTailoredReplaced}, Event{Type: EventJobChanged})
	return nil
}

// EditBullet sets a bullet's content in the Tailored Profile. A content edit
// clears the bullet's relevance score and bumps its generation, which
// invalidates every in-flight provider result for the old text.
func (s *Store) EditBullet(bulletID, content string) error {
	s.mu.Lock()
	_, bullet := s.tailored.FindBullet(bulletID)
	if bullet == nil {
		s.mu.Unlock()
		return ErrBulletNotFound
	}
	bullet.Content = content
	bullet.ClearScore()
	s.generations[bulletID]++
	s.mu.Unlock()
	s.emit(Event{Type: EventBulletEdited, BulletID: bulletID})
	return nil
}

// ToggleVisibility flips a bullet's inclusion in the final output. Content
// is untouched, so scores and generations are preserved.
func (s *Store) ToggleVisibility(bulletID string) error {
	s.mu.Lock()
	_, bullet := s.tailored.FindBullet(bulletID)
	if bullet == nil {
		s.mu.Unlock()
		return ErrBulletNotFound
	}
	bullet.IsVisible = !bullet.IsVisible
	s.mu.Unlock()
	return nil
}

// ToggleLock flips a bullet's exemption from auto-optimization.
func (s *Store) ToggleLock(bulletID string) error {
	s.mu.Lock()
	_, bullet := s.tailored.FindBullet(bulletID)
	if bullet == nil {
		s.mu.Unlock()
		return ErrBulletNotFound
	}
	bullet.IsLocked = !bullet.IsLocked
	s.mu.Unlock()
	return nil
}

// InsertBulletFront prepends a bullet to the given experience's list.
func (s *Store) InsertBulletFront(experienceID string, bullet types.Bullet) error {
	s.mu.Lock()
	exp := s.tailored.FindExperience(experienceID)
	if exp == nil {
		s.mu.Unlock()
		return ErrExperienceNotFound
	}
	exp.Bullets = append([]types.Bullet{bullet.Clone()}, exp.Bullets...)
	s.mu.Unlock()
	s.emit(Event{Type: EventBulletEdited, BulletID: bullet.ID})
	return nil
}

// BulletSnapshot captures a bullet's current content and edit generation for
// an outgoing provider request.
func (s *Store) BulletSnapshot(bulletID string) (content string, gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, bullet := s.tailored.FindBullet(bulletID)
	if bullet == nil {
		return "", 0, ErrBulletNotFound
	}
	return bullet.Content, s.generations[bulletID], nil
}

// Generation returns a bullet's current edit generation.
func (s *Store) Generation(bulletID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[bulletID]
}

// ApplyBulletScore stamps a score onto a bullet if its generation still
// matches the one captured at request time. Returns false when the result
// was dropped as stale or for an unknown bullet.
func (s *Store) ApplyBulletScore(bulletID string, gen uint64, score int, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[bulletID] != gen {
		s.log.WithField("bullet", bulletID).Debug("dropping stale score result")
		return false
	}
	_, bullet := s.tailored.FindBullet(bulletID)
	if bullet == nil {
		return false
	}
	bullet.SetScore(score, reason)
	return true
}

// Flush waits for scheduled persistence writes to finish. Intended for
// shutdown paths and tests.
func (s *Store) Flush() {
	s.persistWG.Wait()
}

// syncTailoredLocked enforces the sync rule: while the job is empty the
// Tailored Profile equals a fresh copy of the Master Profile. Returns events
// to emit after the lock is released.
func (s *Store) syncTailoredLocked() []Event {
	if !s.job.IsEmpty() {
		return nil
	}
	s.replaceTailoredLocked(s.master.Clone())
	return []Event{{Type: EventTailoredReplaced}}
}

// replaceTailoredLocked swaps in a new Tailored Profile and bumps every
// affected bullet generation so in-flight results for old content are
// dropped when they resolve.
func (s *Store) replaceTailoredLocked(p *types.Profile) {
	for _, ref := range s.tailored.FlattenBullets() {
		s.generations[ref.ID]++
	}
	for _, ref := range p.FlattenBullets() {
		s.generations[ref.ID]++
	}
	s.tailored = p
}

// schedulePersistLocked writes the Master Profile to the KV collaborator on
// a separate goroutine. The write is a full overwrite, so retries and
// overlapping writes are idempotent. Failures are logged and reported
// through the subscriber-visible session log, never fatal: in-memory state
// stays authoritative.
func (s *Store) schedulePersistLocked() {
	data, err := json.Marshal(s.master)
	if err != nil {
		s.log.WithError(err).Error("failed to encode master profile")
		return
	}

	s.persistMu.Lock()
	s.pendingJSON = data
	s.persistMu.Unlock()

	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		// Always write the latest pending state: overlapping writes then
		// collapse to the same final value regardless of goroutine order.
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if s.pendingJSON == nil {
			return
		}
		if err := s.kv.Put(context.Background(), storage.KeyMasterProfile, s.pendingJSON); err != nil {
			s.log.WithError(err).Error("failed to persist master profile")
		}
	}()
}

// emit delivers events to subscribers outside the store lock.
func (s *Store) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	s.mu.Lock()
	subs := append(([]func(Event))(nil), s.subscribers...)
	s.mu.Unlock()
	for _, event := range events {
		for _, fn := range subs {
			fn(event)
		}
	}
}
