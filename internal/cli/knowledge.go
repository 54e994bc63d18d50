package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ava/internal/policy"
)

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List known questions with their priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, base, err := loadKnowledge(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, q := range base.Questions {
				answers := base.CountAnswers(q.ID)
				fmt.Fprintf(out, "%d\tasked=%d\tanswers=%d\tpriority=%.2f\t%s\n",
					q.ID, q.AskedCount, answers, policy.Priority(q, answers), q.Text)
			}
			return nil
		},
	}
}

func newAnswersCmd() *cobra.Command {
	var questionID int
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "List recorded answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, base, err := loadKnowledge(cmd.Context())
			if err != nil {
				return err
			}
			answers := base.Answers
			if cmd.Flags().Changed("question") {
				answers = base.AnswersFor(questionID)
			}
			out := cmd.OutOrStdout()
			for _, a := range answers {
				fmt.Fprintf(out, "%d\tquestion=%d\t%s\n", a.ID, a.QuestionID, a.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&questionID, "question", -1, "only show answers to this question id")
	return cmd
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the question ava would ask next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, base, err := loadKnowledge(cmd.Context())
			if err != nil {
				return err
			}
			q, ok := policy.PickQuestionToAsk(base)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no questions yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(q.ID)+"\t"+q.Text)
			return nil
		},
	}
}
