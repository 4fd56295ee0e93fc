//nolint:revive // types is a standard Go package name pattern
package types

// JobDescription represents the target job being tailored against.
// Keywords are extracted by the analysis provider; order is irrelevant.
type JobDescription struct {
	ID       string   `json:"id"`
	Company  string   `json:"company"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// IsEmpty reports whether the job carries no user-entered content.
// While the job is empty the Tailored Profile tracks the Master Profile;
// the first non-empty field is the fork point.
func (j *JobDescription) IsEmpty() bool {
	return j.Company == "" && j.Title == "" && j.Text == ""
}

// Clone returns an independent deep copy of the job description.
func (j *JobDescription) Clone() *JobDescription {
	out := *j
	out.Keywords = append([]string(nil), j.Keywords...)
	return &out
}
