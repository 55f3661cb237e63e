package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func typesfixCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "typesfix",
		Short: "Flatten emitted declarations into the types folder",
		Long: `Copy the .d.ts files the compiler emitted under <types_dir>/<source_dir> up
into <types_dir> so the export map's types paths resolve, then remove the
nested folder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			res, err := a.gen.FixTypes()
			if err != nil {
				return err
			}
			printSummary(cmd, fmt.Sprintf("typesfix: %d declaration files moved into %s", len(res.Copied), a.cfg.Output.TypesDir), nil)
			return nil
		},
	}
}
