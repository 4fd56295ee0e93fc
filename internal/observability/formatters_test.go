package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(&types.JobDescription{
		Company:  "Acme Corp",
		Title:    "Senior Engineer",
		Text:     "We need a Go engineer.",
		Keywords: []string{"Go", "Kubernetes"},
	})
	output := buf.String()

	assert.Contains(t, output, "TARGET JOB")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Go, Kubernetes")
}

func TestPrintJob_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(&types.JobDescription{})
	p.PrintJob(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := 87
	p.PrintProfile(&types.Profile{
		Name:  "Alex Mercer",
		Email: "alex@example.com",
		Experiences: []types.Experience{
			{
				ID: "1", Company: "Acme", Role: "Engineer",
				StartDate: "2021-03", EndDate: "Present",
				Bullets: []types.Bullet{
					{ID: "b1", Content: "Shipped things", IsVisible: true, RelevanceScore: &score},
					{ID: "b2", Content: "Hidden bullet", IsVisible: false},
				},
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "TAILORED PROFILE")
	assert.Contains(t, output, "Alex Mercer")
	assert.Contains(t, output, "(87)")
	assert.Contains(t, output, "unscored")
	assert.Contains(t, output, "×", "hidden bullets get a distinct marker")
}

func TestPrintGapAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGapAnalysis(&types.GapAnalysisResult{
		Missing: []string{"Kubernetes"},
		Present: []string{"Go", "Python"},
	})
	output := buf.String()

	assert.Contains(t, output, "GAP ANALYSIS")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "Python")
}

func TestPrintGapAnalysis_NoGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGapAnalysis(&types.GapAnalysisResult{Present: []string{"Go"}})

	assert.Contains(t, buf.String(), "No missing skills")
}

func TestPrintSnapshots(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSnapshots([]types.Snapshot{
		{ID: "snap-1", Company: "Acme", JobTitle: "Engineer", Timestamp: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
	})
	output := buf.String()

	assert.Contains(t, output, "SAVED APPLICATIONS")
	assert.Contains(t, output, "Acme — Engineer")
	assert.Contains(t, output, "2026-08-01 09:30")
}

func TestPrintSnapshots_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSnapshots(nil)

	assert.Contains(t, buf.String(), "No saved applications")
}
