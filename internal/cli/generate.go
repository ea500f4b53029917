package cli

import (
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/service"

	"github.com/spf13/cobra"
)

func newGenerateCmd(factory Factory, cfg func() *config.Config) *cobra.Command {
	var questions int

	cmd := &cobra.Command{
		Use:   "generate <url>",
		Short: "Run the full pipeline for an article and print the quiz as JSON",
		Long:  "Run the full pipeline for an article and print the quiz as JSON. Nothing is stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			generator, err := factory.Generator(cmd.Context(), c)
			if err != nil {
				return err
			}

			n := questions
			if n <= 0 {
				n = c.Quiz.DefaultQuestions
			}
			pipeline := service.NewQuizPipeline(factory.Fetcher(c), factory.Extractor(), generator, n)
			_, quiz, err := pipeline.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), quiz)
		},
	}

	cmd.Flags().IntVarP(&questions, "questions", "n", 0, "number of questions to request (clamped to the configured range)")
	return cmd
}
