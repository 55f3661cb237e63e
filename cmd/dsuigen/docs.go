package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/dsuigen/internal/config"
)

func docsCmd(opts *options) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Write the Markdown component reference",
		Long: `Scan the source folders and write one Markdown section per module with its
import line, props declaration and a usage example taken from its story.

--mode ast resolves declarations from parsed sources and requires the
project tsconfig.json; --mode text uses a line-based heuristic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch modeFlag {
			case "", config.ExtractorAST, config.ExtractorText:
			default:
				return fmt.Errorf("invalid --mode %q: want %q or %q", modeFlag, config.ExtractorAST, config.ExtractorText)
			}
			a, err := opts.open()
			if err != nil {
				return err
			}
			return a.docs(cmd, modeFlag)
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "declaration extractor: ast or text (default from config)")

	return cmd
}
