package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/types"
)

var importJobsPath string

var importJobsCmd = &cobra.Command{
	Use:   "import-jobs",
	Short: "Load a JSON job list into the job catalog",
	Long: `Insert every job of a JSON job list into the PostgreSQL job catalog used by the
REST API. Jobs without an id get a new one. Requires DATABASE_URL.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadAppConfig(configPath)
		if err != nil {
			return err
		}
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.DatabaseURL = url
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}

		return runImportJobs(ctx, cmd.OutOrStdout(), database, importJobsPath)
	},
}

// jobCreator is the part of the catalog store import-jobs writes to.
type jobCreator interface {
	CreateJob(ctx context.Context, job *types.JobRecord) error
}

func init() {
	importJobsCmd.Flags().StringVarP(&importJobsPath, "jobs", "j", "", "Path to jobs JSON (required)")
	_ = importJobsCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(importJobsCmd)
}

func runImportJobs(ctx context.Context, out io.Writer, store jobCreator, path string) error {
	jobs, err := loadJobs(path)
	if err != nil {
		return err
	}

	for i := range jobs {
		job := &jobs[i]
		if job.Title == "" || job.Company == "" {
			return fmt.Errorf("job %d: title and company are required", i+1)
		}
		if err := store.CreateJob(ctx, job); err != nil {
			return fmt.Errorf("job %d (%s): %w", i+1, job.Title, err)
		}
		if verbose {
			fmt.Fprintf(out, "  %s  %s at %s\n", job.ID, job.Title, job.Company)
		}
	}

	fmt.Fprintf(out, "Imported %d jobs\n", len(jobs))
	return nil
}
