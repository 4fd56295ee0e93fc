package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the tailored resume as it would be sent",
	Long: "Print the Tailored Profile with hidden bullets removed and each " +
		"experience's bullets ordered by relevance.",
	RunE: runPreview,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the Tailored Profile with the Master Profile",
	RunE:  runReset,
}

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm discarding all tailoring work")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	profile := a.store.Tailored()
	for i := range profile.Experiences {
		exp := &profile.Experiences[i]
		visible := make([]types.Bullet, 0, len(exp.Bullets))
		for _, b := range exp.Bullets {
			if b.IsVisible {
				visible = append(visible, b)
			}
		}
		exp.Bullets = visible
		session.SortBulletsByRelevance(exp)
	}

	a.printer.PrintJob(a.store.Job())
	a.printer.PrintProfile(profile)
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("reset discards all tailoring work for this job; re-run with --yes")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.ResetTailoredFromMaster(true); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	fmt.Println("Tailored profile reset from master.")
	return nil
}
