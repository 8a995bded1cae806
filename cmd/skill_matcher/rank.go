package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "List the jobs most relevant to a resume",
	Long: `Rank every job in a JSON job list by the Jaccard similarity of its skills with the
resume's. Jobs sharing no skill are left out.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd.OutOrStdout(), rankOpts)
	},
}

type rankOptions struct {
	Profile string
	Jobs    string
	Out     string
}

var rankOpts rankOptions

func init() {
	rankCmd.Flags().StringVarP(&rankOpts.Profile, "profile", "p", "", "Path to profile JSON (required)")
	rankCmd.Flags().StringVarP(&rankOpts.Jobs, "jobs", "j", "", "Path to jobs JSON (required)")
	rankCmd.Flags().StringVarP(&rankOpts.Out, "out", "o", "", "Write the ranking JSON to this path instead of stdout")
	_ = rankCmd.MarkFlagRequired("profile")
	_ = rankCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(rankCmd)
}

func runRank(out io.Writer, opts rankOptions) error {
	resumeSkills, err := loadResumeSkills(opts.Profile)
	if err != nil {
		return err
	}
	jobs, err := loadJobs(opts.Jobs)
	if err != nil {
		return err
	}

	matches := ranking.RankJobs(resumeSkills, jobs)
	if verbose {
		observability.NewPrinter(out).PrintJobMatches(matches)
	}
	return emit(out, opts.Out, matches)
}
