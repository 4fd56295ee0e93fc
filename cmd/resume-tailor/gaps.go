package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Find job requirements missing from the Tailored Profile",
	RunE:  runGaps,
}

var fillGapCmd = &cobra.Command{
	Use:   "fill-gap <skill>",
	Short: "Write a bridging bullet that proves a missing skill",
	Long: "Generate one achievement-style bullet proving the skill from your rough " +
		"notes, and prepend it to the chosen experience with a top relevance score. " +
		"The skill moves from missing to present.",
	Args: cobra.ExactArgs(1),
	RunE: runFillGap,
}

var (
	fillExperience string
	fillContext    string
)

func init() {
	fillGapCmd.Flags().StringVar(&fillExperience, "experience", "", "Target experience id (required)")
	fillGapCmd.Flags().StringVar(&fillContext, "context", "", "Your rough notes on how you used the skill (required)")

	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(fillGapCmd)
}

func runGaps(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.gaps.AnalyzeGaps(ctx)
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	a.printer.PrintGapAnalysis(result)
	return nil
}

func runFillGap(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	bullet, err := a.gaps.FillGap(ctx, args[0], fillExperience, fillContext)
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	fmt.Printf("Added to experience %s:\n  %s\n", fillExperience, bullet.Content)
	a.printer.PrintGapAnalysis(a.gaps.Result())
	return nil
}
