// Copyright © 2025 The javals authors

package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/complete"
	"github.com/javakit/javals/diagnostic"
	"github.com/javakit/javals/workspace"
)

// CheckCommand creates the "check" cobra command: batch diagnostics
// for a set of files, rendered as annotated source snippets.
func CheckCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, o := range opts {
		o(&cfg)
	}

	var colorFlag string

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report compiler diagnostics for Java files",
		Long: `Compile the given files through the configured compiler facade and
print their diagnostics. Without an embedded compiler front end no
semantic diagnostics are produced.

The exit status is 1 when any error-severity diagnostic is reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := workspace.New()
			var uris []string
			var roots []string
			for _, a := range args {
				abs, err := filepath.Abs(a)
				if err != nil {
					return err
				}
				uris = append(uris, abs)
				roots = append(roots, filepath.Dir(abs))
			}
			if err := ws.SetWorkspaceRoots(roots); err != nil {
				return err
			}

			engine := complete.NewEngine(ws, cfg.resolveFacade())
			diags, err := engine.Diagnostics(context.Background(), uris)
			if err != nil {
				return err
			}

			r := &diagnostic.Renderer{
				Color:  parseColorMode(colorFlag),
				Source: ws.ContentsURI,
			}
			if err := r.RenderAll(os.Stdout, diags); err != nil {
				return err
			}
			for _, d := range diags {
				if d.Severity == compiler.SeverityError {
					os.Exit(1)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	return cmd
}

func parseColorMode(s string) diagnostic.ColorMode {
	switch s {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func init() {
	rootCmd.AddCommand(CheckCommand())
}
