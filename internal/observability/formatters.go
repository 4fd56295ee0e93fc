// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs the active job description summary.
func (p *Printer) PrintJob(job *types.JobDescription) {
	if job == nil || job.IsEmpty() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Text:     %d chars\n", len(job.Text)))
	if len(job.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s", strings.Join(job.Keywords, ", ")))
	}

	p.printBox("TARGET JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the tailored profile with per-bullet scores and
// visibility markers.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s — %s\n", profile.Name, profile.Email))

	for _, exp := range profile.Experiences {
		sb.WriteString(fmt.Sprintf("\n%s, %s (%s – %s)\n", exp.Role, exp.Company, exp.StartDate, exp.EndDate))
		for _, bullet := range exp.Bullets {
			marker := "•"
			if !bullet.IsVisible {
				marker = "×"
			}
			if bullet.IsLocked {
				marker += " [locked]"
			}
			score := "unscored"
			if bullet.RelevanceScore != nil {
				score = fmt.Sprintf("%d", *bullet.RelevanceScore)
			}
			sb.WriteString(fmt.Sprintf("  %s (%s) %s\n", marker, score, bullet.Content))
		}
	}

	p.printBox("TAILORED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapAnalysis outputs the missing/present skill verdict.
func (p *Printer) PrintGapAnalysis(result *types.GapAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if len(result.Missing) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(result.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Missing[i]))
		}
		if len(result.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Missing)-maxItemsToShow))
		}
	} else {
		sb.WriteString("No missing skills detected.\n")
	}
	if len(result.Present) > 0 {
		sb.WriteString("\nPresent:\n")
		count := min(len(result.Present), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Present[i]))
		}
		if len(result.Present) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Present)-maxItemsToShow))
		}
	}

	p.printBox("GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSnapshots outputs the saved application records, most recent first.
func (p *Printer) PrintSnapshots(snapshots []types.Snapshot) {
	var sb strings.Builder
	if len(snapshots) == 0 {
		sb.WriteString("No saved applications.")
	}
	for i, snap := range snapshots {
		sb.WriteString(fmt.Sprintf("#%d  %s — %s\n", i+1, snap.Company, snap.JobTitle))
		sb.WriteString(fmt.Sprintf("    %s  id=%s\n", snap.Timestamp.Format("2006-01-02 15:04"), snap.ID))
	}

	p.printBox("SAVED APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
