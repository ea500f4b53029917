package cli

import (
	"context"

	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/wikipedia"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/spf13/cobra"
)

// Factory builds the pipeline collaborators used by the commands.
type Factory interface {
	Fetcher(cfg *config.Config) domain.ArticleFetcher
	Extractor() domain.ArticleExtractor
	Generator(ctx context.Context, cfg *config.Config) (domain.QuizGenerationService, error)
}

type defaultFactory struct{}

func (defaultFactory) Fetcher(cfg *config.Config) domain.ArticleFetcher {
	return wikipedia.NewHTTPFetcher(cfg.Fetcher, nil)
}

func (defaultFactory) Extractor() domain.ArticleExtractor {
	return wikipedia.NewExtractor()
}

func (defaultFactory) Generator(ctx context.Context, cfg *config.Config) (domain.QuizGenerationService, error) {
	return quizgen.NewGeminiQuizGenerator(ctx, cfg.LLM, cfg.Quiz)
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd(defaultFactory{}).Execute()
}

// NewRootCmd wires the extract and generate commands to factory.
func NewRootCmd(factory Factory) *cobra.Command {
	var (
		verbose bool
		cfg     *config.Config
	)

	cmd := &cobra.Command{
		Use:          "wikiquiz",
		Short:        "Extract Wikipedia articles and generate quizzes from them",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			// Logs share stdout with the JSON output, so keep them quiet unless asked.
			loaded.Logger.Level = "error"
			if verbose {
				loaded.Logger.Level = "debug"
			}
			if err := logger.Initialize(loaded.Logger); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress")
	cmd.AddCommand(newExtractCmd(factory, func() *config.Config { return cfg }))
	cmd.AddCommand(newGenerateCmd(factory, func() *config.Config { return cfg }))
	return cmd
}
