package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/origadmin/accgen/internal/core"
	"github.com/origadmin/accgen/internal/diag"
)

var checkCmd = &cobra.Command{
	Use:   "check <decl.toml>",
	Short: "Validate a declaration file without writing output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := core.NewGenerator().ProcessFile(args[0])
		if err != nil {
			return err
		}
		if n := diag.NewPrinter(os.Stderr, opts.Color).Print(res.Err()); n > 0 {
			return errReported
		}
		methods := 0
		for _, e := range res.Entities {
			methods += len(e.Methods)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entities, %d accessors\n", args[0], len(res.Entities), methods)
		return nil
	},
}
