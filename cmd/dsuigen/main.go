package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/julianshen/dsuigen/internal/runner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("dsuigen %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	logger := newLogger(os.Stdout)
	err := runner.Guard(func() error {
		return newRootCmd(logger).Execute()
	})
	if err != nil {
		logger.Error(err.Error())
		os.Exit(runner.ExitCode(err))
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "dsuigen",
	})
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	opts := &options{logger: logger}

	rootCmd := &cobra.Command{
		Use:   "dsuigen",
		Short: "Generate the export map and component reference of a UI library",
		Long: `dsuigen scans the components, lib and hooks folders of a UI component
library, rewrites the package.json export map and writes a Markdown
component reference. Without a subcommand it runs "exports" then "docs".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			if err := a.exports(cmd); err != nil {
				return err
			}
			return a.docs(cmd, "")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default <root>/dsuigen.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", ".", "project root of the component library")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log per-file resolution details")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(exportsCmd(opts))
	rootCmd.AddCommand(docsCmd(opts))
	rootCmd.AddCommand(typesfixCmd(opts))
	rootCmd.AddCommand(previewCmd(opts))

	return rootCmd
}
