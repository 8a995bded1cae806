package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/export"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/skillgap"
	"github.com/jonathan/skill-matcher/internal/types"
)

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Aggregate a resume against a list of jobs",
	Long: `Compare a resume with every job in a JSON job list, rank the jobs by how much of
each the resume covers and count the skills missing most often.

--profile accepts the profile.json written by extract or a JSON list of skills.
--jobs is a JSON list of jobs with title, company and required_skills.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSkillGap(cmd.OutOrStdout(), skillGapOpts)
	},
}

type skillGapOptions struct {
	Profile string
	Jobs    string
	Limit   int
	Out     string
	XLSX    string
}

var skillGapOpts skillGapOptions

func init() {
	skillGapCmd.Flags().StringVarP(&skillGapOpts.Profile, "profile", "p", "", "Path to profile JSON (required)")
	skillGapCmd.Flags().StringVarP(&skillGapOpts.Jobs, "jobs", "j", "", "Path to jobs JSON (required)")
	skillGapCmd.Flags().IntVar(&skillGapOpts.Limit, "limit", 0, "Analyze at most this many jobs (default from config, max 50)")
	skillGapCmd.Flags().StringVarP(&skillGapOpts.Out, "out", "o", "", "Write the insight JSON to this path instead of stdout")
	skillGapCmd.Flags().StringVar(&skillGapOpts.XLSX, "xlsx", "", "Also write an Excel workbook to this path")
	_ = skillGapCmd.MarkFlagRequired("profile")
	_ = skillGapCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(skillGapCmd)
}

func runSkillGap(out io.Writer, opts skillGapOptions) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	resumeSkills, err := loadResumeSkills(opts.Profile)
	if err != nil {
		return err
	}
	jobs, err := loadJobs(opts.Jobs)
	if err != nil {
		return err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = cfg.DefaultJobLimit
	}
	jobs = capJobs(jobs, limit)

	insight := skillgap.Aggregate(resumeSkills, jobs)
	if err := validateOutput(schemas.AggregatedInsight, insight); err != nil {
		return err
	}

	if opts.XLSX != "" {
		recs := skillgap.RecommendSkills(resumeSkills, jobs)
		path, err := export.WriteInsightWorkbook(insight, recs, opts.XLSX)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Workbook: %s\n", path)
	}

	if verbose {
		printer := observability.NewPrinter(out)
		if len(insight.PerJobResults) == 1 {
			printer.PrintSkillGap(&insight.PerJobResults[0])
		} else {
			printer.PrintInsight(insight)
		}
	}
	return emit(out, opts.Out, insight)
}

// capJobs keeps the first limit jobs, never more than the maximum analysis size.
func capJobs(jobs []types.JobRecord, limit int) []types.JobRecord {
	limit = min(limit, config.MaxJobLimit)
	if limit > 0 && len(jobs) > limit {
		return jobs[:limit]
	}
	return jobs
}

// emit writes v to path, or to out as JSON when path is empty.
func emit(out io.Writer, path string, v any) error {
	if path == "" {
		return writeJSONTo(out, v)
	}
	if err := writeJSON(path, v); err != nil {
		return err
	}
	fmt.Fprintf(out, "Output: %s\n", path)
	return nil
}
