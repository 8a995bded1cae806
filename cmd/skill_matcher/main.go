// Package main provides the skill_matcher command line: resume extraction,
// skill matching, skill-gap analysis, job alerts and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "skill_matcher",
	Short: "Resume skill matching and skill-gap analysis",
	Long: `skill_matcher extracts skills from resumes, scores them against job requirements
and aggregates the skills most often missing across many jobs.

Configuration can be loaded from a JSON or YAML file using --config. Command-line
flags override config file values.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
