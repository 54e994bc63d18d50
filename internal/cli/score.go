package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ava/internal/policy"
	"ava/internal/probe"
	"ava/internal/similarity"
	"ava/internal/tokenize"
)

func newScoreCmd() *cobra.Command {
	var tokenizer string
	cmd := &cobra.Command{
		Use:   "score <input> <sample>",
		Short: "Score how much of input is covered by sample",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := tokenize.ByName(tokenizer)
			if err != nil {
				return err
			}
			score := similarity.Score(tok.Tokenize(args[0]), tok.Tokenize(args[1]))
			fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", score)
			return nil
		},
	}
	cmd.Flags().StringVar(&tokenizer, "tokenizer", tokenize.NameNormalized, "tokenizer: normalized or whitespace")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "match <input>",
		Short: "Rank known questions against input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := loadKnowledge(cmd.Context())
			if err != nil {
				return err
			}
			tok, err := tokenize.ByName(cfg.Match.Tokenizer)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range probe.New(tok).Rank(args[0], base.Questions, limit) {
				fmt.Fprintf(out, "%.3f\t%d\t%s\n", m.Score, m.ID, m.Text)
			}
			matcher := policy.NewMatcher(tok, cfg.Match.Threshold)
			if q, score, ok := matcher.Match(args[0], base.Questions); ok {
				fmt.Fprintf(out, "recognized as %d (%.3f > %.2f)\n", q.ID, score, matcher.Threshold)
			} else {
				fmt.Fprintf(out, "not recognized (threshold %.2f)\n", matcher.Threshold)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "max results")
	return cmd
}
