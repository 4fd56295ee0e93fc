// Package main provides the entry point for the resume-tailor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-tailor",
	Short: "Tailor a master resume to a specific job posting",
	Long: "resume-tailor keeps a Master Profile and a per-job Tailored Profile, " +
		"proposes AI rewrites bullet by bullet, ranks bullets against the posting, " +
		"finds skill gaps, and saves immutable per-application snapshots.",
}

var (
	flagConfig  string
	flagStore   string
	flagAPIKey  string
	flagModel   string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Path to the SQLite state file")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Model tier: lite, standard, or advanced")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
