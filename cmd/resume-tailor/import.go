package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import <resume-file>",
	Short: "Parse a resume file into the Master Profile",
	Long: "Parse a resume (plain text or PDF) into a structured profile and replace " +
		"the Master Profile with it. The Tailored Profile follows while no job is active.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	analyzer, err := a.requireAnalyzer(ctx)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	var profile *types.Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		profile, err = analyzer.ParseResumeFromPDF(ctx, data)
	default:
		profile, err = analyzer.ParseResumeFromText(ctx, string(data))
	}
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	a.store.SetMaster(profile)
	if err := a.saveSession(ctx); err != nil {
		return err
	}

	fmt.Printf("Imported %d experiences for %s\n", len(profile.Experiences), profile.Name)
	if a.cfg.Verbose {
		a.printer.PrintProfile(a.store.Master())
	}
	return nil
}
