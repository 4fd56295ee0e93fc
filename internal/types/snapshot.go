//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Snapshot is an immutable, timestamped record of one application: the
// Tailored Profile, the job description, and the generated cover letter
// exactly as they were when the user saved. Once written, a snapshot's
// embedded data never changes regardless of later profile edits.
type Snapshot struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Company     string          `json:"company"`
	JobTitle    string          `json:"jobTitle"`
	Profile     *Profile        `json:"profileSnapshot"`
	Job         *JobDescription `json:"jobSnapshot"`
	CoverLetter string          `json:"coverLetter,omitempty"`
}

// Clone returns an independent deep copy of the snapshot. Loading a snapshot
// must hand callers a fresh fork, never a reference into stored data.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	if s.Profile != nil {
		out.Profile = s.Profile.Clone()
	}
	if s.Job != nil {
		out.Job = s.Job.Clone()
	}
	return &out
}
