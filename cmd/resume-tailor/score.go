package main

import (
	"context"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank every bullet against the active job",
	Long: "Send every bullet across every experience to the provider in one batch " +
		"and cache a 0-100 relevance score per bullet. Bullets the provider omits " +
		"stay unscored. Requires job description text.",
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.scorer.ScoreAll(ctx); err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	a.printer.PrintProfile(a.store.Tailored())
	return nil
}
