package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/ranking"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one resume skill list against one job skill list",
	Long: `Compare two comma separated skill lists.

--mode recall reports how much of the job the resume covers (matched / job skills).
--mode jaccard reports how related the two lists are (matched / union).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMatch(cmd.OutOrStdout(), matchOpts)
	},
}

type matchOptions struct {
	ResumeSkills string
	JobSkills    string
	Mode         string
}

var matchOpts matchOptions

func init() {
	matchCmd.Flags().StringVar(&matchOpts.ResumeSkills, "resume-skills", "", "Comma separated resume skills (required)")
	matchCmd.Flags().StringVar(&matchOpts.JobSkills, "job-skills", "", "Comma separated job skills (required)")
	matchCmd.Flags().StringVar(&matchOpts.Mode, "mode", string(ranking.Recall), "Scoring mode: recall or jaccard")
	_ = matchCmd.MarkFlagRequired("resume-skills")
	_ = matchCmd.MarkFlagRequired("job-skills")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(out io.Writer, opts matchOptions) error {
	mode, err := ranking.ParseScoringMode(opts.Mode)
	if err != nil {
		return err
	}

	result := ranking.MatchResumeToJob(splitList(opts.ResumeSkills), splitList(opts.JobSkills), mode)
	return writeJSONTo(out, result)
}
