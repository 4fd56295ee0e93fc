// Package snapshot creates and manages immutable application records: the
// exact Tailored Profile, job description, and cover letter used for one
// application. Snapshots are append-only; deletion is the only mutation.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// ErrNotFound reports a lookup for a snapshot id not in the store.
var ErrNotFound = errors.New("snapshot not found")

// ErrMissingJobIdentity reports a save attempt with neither company nor
// title; such a record could never be told apart in the history list.
var ErrMissingJobIdentity = errors.New("company or job title is required to save")

// Store persists snapshots most-recent-first under a single KV key.
type Store struct {
	kv       storage.KV
	validate *validator.Validate
	now      func() time.Time
}

// NewStore creates a snapshot store over the given KV collaborator.
func NewStore(kv storage.KV) *Store {
	return &Store{
		kv:       kv,
		validate: validator.New(),
		now:      time.Now,
	}
}

// saveInput carries the validated identity fields of a save request.
type saveInput struct {
	Company string `validate:"required_without=Title"`
	Title   string `validate:"required_without=Company"`
}

// Save freezes deep copies of the profile, job, and letter into a new record
// at the front of the list and returns the updated list. Fails before any
// write when both company and title are empty.
func (s *Store) Save(ctx context.Context, profile *types.Profile, job *types.JobDescription, coverLetter string) ([]types.Snapshot, error) {
	if err := s.validate.Struct(saveInput{Company: job.Company, Title: job.Title}); err != nil {
		return nil, ErrMissingJobIdentity
	}

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	record := types.Snapshot{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		Company:     job.Company,
		JobTitle:    job.Title,
		Profile:     profile.Clone(),
		Job:         job.Clone(),
		CoverLetter: coverLetter,
	}

	// Same-id records are replaced rather than duplicated; with freshly
	// generated ids this only matters for imported histories.
	updated := make([]types.Snapshot, 0, len(existing)+1)
	updated = append(updated, record)
	for _, snap := range existing {
		if snap.ID != record.ID {
			updated = append(updated, snap)
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns all snapshots, most recent first. An absent key yields an
// empty list.
func (s *Store) List(ctx context.Context) ([]types.Snapshot, error) {
	data, ok, err := s.kv.Get(ctx, storage.KeySnapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var snapshots []types.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}
	return snapshots, nil
}

// Load returns deep copies of the stored record's contents. Callers must
// treat the result as a fresh fork; loading never mutates the stored record.
func (s *Store) Load(ctx context.Context, id string) (*types.Snapshot, error) {
	snapshots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshots {
		if snapshots[i].ID == id {
			return snapshots[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes one record. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	snapshots, err := s.List(ctx)
	if err != nil {
		return err
	}

	updated := snapshots[:0]
	for _, snap := range snapshots {
		if snap.ID != id {
			updated = append(updated, snap)
		}
	}
	if len(updated) == len(snapshots) {
		return nil
	}
	return s.persist(ctx, updated)
}

func (s *Store) persist(ctx context.Context, snapshots []types.Snapshot) error {
	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to encode snapshots: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeySnapshots, data); err != nil {
		return fmt.Errorf("failed to persist snapshots: %w", err)
	}
	return nil
}
