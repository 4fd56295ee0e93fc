package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Generate a cover letter for the active job",
	Long: "Generate a cover letter grounded strictly in the Master Profile's actual " +
		"work history and the active job. The letter is kept with the session and " +
		"included in saved snapshots.",
	RunE: runLetter,
}

func init() {
	rootCmd.AddCommand(letterCmd)
}

func runLetter(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	job := a.store.Job()
	if job.Title == "" && job.Company == "" {
		return fmt.Errorf("set the job's company or title first (resume-tailor job)")
	}

	analyzer, err := a.requireAnalyzer(ctx)
	if err != nil {
		return err
	}

	letter, err := analyzer.GenerateCoverLetter(ctx, a.store.Master(), job.Title, job.Company, job.Text)
	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}

	a.store.SetCoverLetter(letter)
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	fmt.Println(letter)
	return nil
}
