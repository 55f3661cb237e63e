package main

import "github.com/spf13/cobra"

func exportsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exports",
		Short: "Rewrite the package.json export map",
		Long: `Scan the source folders, resolve each module's entry file and rewrite the
exports, typesVersions, main, module, types, files and sideEffects fields of
package.json. Every other field is kept in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			return a.exports(cmd)
		},
	}
}
