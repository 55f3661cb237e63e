package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/dsuigen/internal/preview"
	"github.com/julianshen/dsuigen/internal/vfs"
)

func previewCmd(opts *options) *cobra.Command {
	var widthFlag int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the component reference in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			data, err := a.fs.ReadFile(a.cfg.Docs.Path)
			if err != nil {
				if vfs.IsNotExist(err) {
					return fmt.Errorf("no component reference at %s; run dsuigen docs first", a.cfg.Docs.Path)
				}
				return err
			}

			width, styled := terminalWidth(), isTerminal()
			if widthFlag > 0 {
				width = widthFlag
			}
			r, err := preview.NewRenderer(width, styled)
			if err != nil {
				return err
			}
			out, err := r.Render(string(data))
			if err != nil {
				return fmt.Errorf("rendering %s: %w", a.cfg.Docs.Path, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVar(&widthFlag, "width", 0, "wrap width (default terminal width)")

	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the terminal width or preview.DefaultWidth.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return preview.DefaultWidth
	}
	return width
}
