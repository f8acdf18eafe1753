package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quill/internal/driver"
)

var includesCmd = &cobra.Command{
	Use:   "includes [path]",
	Short: "Print the backend include list in declaration order",
	Long: `Includes checks the tree and prints every #include path the sources
declare, in file order then declaration order, one per line. Duplicates are
preserved.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runIncludes,
	SilenceUsage: true,
}

func runIncludes(cmd *cobra.Command, args []string) error {
	configureColor(cmd)
	roots, opts, err := resolveCheckConfig(cmd, args)
	if err != nil {
		return err
	}
	for _, root := range roots {
		result, err := driver.CheckDir(cmd.Context(), root, opts)
		if err != nil {
			return err
		}
		if result.HasErrors() {
			fmt.Fprint(cmd.ErrOrStderr(), renderBag(result, false))
			return errCheckFailed
		}
		for _, inc := range result.Includes {
			fmt.Fprintln(cmd.OutOrStdout(), inc)
		}
	}
	return nil
}
