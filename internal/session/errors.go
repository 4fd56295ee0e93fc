package session

import "errors"

// Sentinel errors for operation preconditions. Each one rejects the
// operation synchronously before any mutation.
var (
	// ErrNoJobText rejects optimize/score/gap operations while no job
	// description text is present.
	ErrNoJobText = errors.New("no job description text")

	// ErrNotConfirmed rejects destructive overwrites (reset from master,
	// snapshot load) that were not explicitly confirmed.
	ErrNotConfirmed = errors.New("operation requires confirmation")

	// ErrBulletNotFound reports a bullet id absent from the Tailored Profile.
	ErrBulletNotFound = errors.New("bullet not found")

	// ErrExperienceNotFound reports an experience id absent from the
	// Tailored Profile.
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrNoProposal reports an accept/discard on a bullet with no pending
	// proposed change.
	ErrNoProposal = errors.New("no pending proposal for bullet")

	// ErrMissingGapFields rejects a gap fill without a skill, a target
	// experience, and non-empty user context.
	ErrMissingGapFields = errors.New("gap fill requires a skill, target experience, and context")
)
