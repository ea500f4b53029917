package cli

import (
	"encoding/json"
	"io"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/service"

	"github.com/spf13/cobra"
)

func newExtractCmd(factory Factory, cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <url>",
		Short: "Fetch an article and print its extracted content as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := service.NewQuizPipeline(factory.Fetcher(cfg()), factory.Extractor(), nil, 0)
			article, err := pipeline.ExtractArticle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), article)
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
