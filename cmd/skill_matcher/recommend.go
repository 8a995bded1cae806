package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/skillgap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend skills to learn from a list of jobs",
	Long: `Rank the skills a resume is missing by how many jobs require them and assign a
priority to each. The potential improvement figure is an estimate, not a promise.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRecommend(cmd.OutOrStdout(), recommendOpts)
	},
}

type recommendOptions struct {
	Profile string
	Jobs    string
	Out     string
}

var recommendOpts recommendOptions

func init() {
	recommendCmd.Flags().StringVarP(&recommendOpts.Profile, "profile", "p", "", "Path to profile JSON (required)")
	recommendCmd.Flags().StringVarP(&recommendOpts.Jobs, "jobs", "j", "", "Path to jobs JSON (required)")
	recommendCmd.Flags().StringVarP(&recommendOpts.Out, "out", "o", "", "Write the recommendations JSON to this path instead of stdout")
	_ = recommendCmd.MarkFlagRequired("profile")
	_ = recommendCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(out io.Writer, opts recommendOptions) error {
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

	set := skillgap.RecommendSkills(resumeSkills, capJobs(jobs, cfg.RecommendationJobLimit))
	set.AnalysisDate = time.Now().UTC()
	if err := validateOutput(schemas.Recommendations, set); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(out).PrintRecommendations(set)
	}
	return emit(out, opts.Out, set)
}
