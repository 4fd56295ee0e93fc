package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Set the target job and analyze it",
	Long: "Set the target job's company, title, and description. The first non-empty " +
		"field forks the Tailored Profile from the Master Profile. With --analyze, " +
		"keywords are extracted and every bullet is ranked against the posting.",
	RunE: runJob,
}

var (
	jobCompany  string
	jobTitle    string
	jobTextFile string
	jobURL      string
	jobAnalyze  bool
)

func init() {
	jobCmd.Flags().StringVar(&jobCompany, "company", "", "Company name")
	jobCmd.Flags().StringVar(&jobTitle, "title", "", "Job title")
	jobCmd.Flags().StringVar(&jobTextFile, "text", "", "Path to the job description text file")
	jobCmd.Flags().StringVar(&jobURL, "url", "", "Job posting URL to fetch")
	jobCmd.Flags().BoolVar(&jobAnalyze, "analyze", false, "Extract keywords and rank bullets after setting the job")

	rootCmd.AddCommand(jobCmd)
}

func runJob(_ *cobra.Command, _ []string) error {
	if jobTextFile != "" && jobURL != "" {
		return fmt.Errorf("--text and --url are mutually exclusive")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	current := a.store.Job()
	company := current.Company
	title := current.Title
	text := current.Text
	if jobCompany != "" {
		company = jobCompany
	}
	if jobTitle != "" {
		title = jobTitle
	}

	switch {
	case jobTextFile != "":
		data, err := os.ReadFile(jobTextFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		text = string(data)
	case jobURL != "":
		result, err := fetch.JobPosting(ctx, jobURL, nil)
		if err != nil {
			return err
		}
		a.log.WithField("platform", result.Platform).Debug("fetched posting")
		text = result.Text
	}

	a.store.SetJobDetails(company, title, text)

	if jobAnalyze {
		if text == "" {
			return fmt.Errorf("--analyze requires job description text")
		}
		analyzer, err := a.requireAnalyzer(ctx)
		if err != nil {
			return err
		}

		// Keyword extraction, bullet ranking, and gap analysis are
		// independent requests.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			keywords, err := analyzer.AnalyzeJobDescription(gctx, text)
			if err != nil {
				// Keywords are enrichment; an empty list is the fallback.
				a.log.WithError(err).Warn("keyword extraction failed")
				return nil
			}
			a.store.SetJobKeywords(keywords)
			return nil
		})
		g.Go(func() error {
			return a.scorer.ScoreAll(gctx)
		})
		g.Go(func() error {
			_, err := a.gaps.AnalyzeGaps(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
	}

	if err := a.saveSession(ctx); err != nil {
		return err
	}

	a.printer.PrintJob(a.store.Job())
	if jobAnalyze {
		a.printer.PrintProfile(a.store.Tailored())
		a.printer.PrintGapAnalysis(a.gaps.Result())
	}
	return nil
}
