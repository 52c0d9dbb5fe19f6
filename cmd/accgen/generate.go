package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/origadmin/accgen/internal/core"
	"github.com/origadmin/accgen/internal/diag"
)

var generateCmd = &cobra.Command{
	Use:   "generate <decl.toml>",
	Short: "Generate accessors for every entity of a declaration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0])
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.StringP("output", "o", "", "Output file. Defaults to stdout.")
	flags.StringP("format", "f", core.FormatText, "Output format ("+strings.Join(core.Formats, "|")+")")
	flags.StringSlice("template", nil, "Template files or directories overriding the built-in layout")
}

func runGenerate(path string) error {
	slog.Info("Starting accgen", "file", path, "format", opts.Format)
	g := core.NewGenerator()
	if err := g.LoadTemplates(opts.Templates...); err != nil {
		return err
	}
	res, err := g.ProcessFile(path)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := g.Write(w, res, opts.Format); err != nil {
		return err
	}
	if n := diag.NewPrinter(os.Stderr, opts.Color).Print(res.Err()); n > 0 {
		return errReported
	}
	slog.Info("accgen finished successfully.", "entities", len(res.Entities))
	return nil
}
