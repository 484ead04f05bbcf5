// Copyright © 2025 The javals authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/javakit/javals/complete"
	"github.com/javakit/javals/parser"
	"github.com/javakit/javals/prune"
	"github.com/javakit/javals/workspace"
)

// ConsoleCommand creates the "console" cobra command: an interactive
// query console for exercising the analysis core against a workspace
// without an editor attached.
func ConsoleCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, o := range opts {
		o(&cfg)
	}

	cmd := &cobra.Command{
		Use:   "console <root>...",
		Short: "Interactive query console over a workspace",
		Long: `Open an interactive console for completion, signature-help, and
prune queries against the given workspace roots.

Commands:
  complete <file>:<line>:<col>    Completion candidates at a cursor
  signature <file>:<line>:<col>   Signature help at a cursor
  prune <file>:<line>:<col>       Show the pruned source for a cursor
  index                           List the source index
  quit                            Exit`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			roots := make([]string, 0, len(args))
			for _, a := range args {
				abs, err := filepath.Abs(a)
				if err != nil {
					return err
				}
				roots = append(roots, abs)
			}
			ws := workspace.New()
			if err := ws.SetWorkspaceRoots(roots); err != nil {
				return err
			}
			engine := complete.NewEngine(ws, cfg.resolveFacade())
			engine.JDKClasses = cfg.jdkClasses
			engine.ClassPathClasses = cfg.classPathClasses
			return runConsole(ws, engine, os.Stdout)
		},
	}
	return cmd
}

func runConsole(ws *workspace.Workspace, engine *complete.Engine, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "javals> ",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		runConsoleCommand(ws, engine, out, line)
	}
}

func runConsoleCommand(ws *workspace.Workspace, engine *complete.Engine, out io.Writer, line string) {
	verb, rest, _ := strings.Cut(line, " ")
	switch verb {
	case "index":
		for _, f := range ws.All() {
			pkg, _ := ws.PackageName(f)
			fmt.Fprintf(out, "%s\t%s\n", f, pkg)
		}
	case "complete":
		file, l, c, err := parseCursor(rest)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		cands, err := engine.At(context.Background(), file, l, c)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		for _, cand := range cands {
			fmt.Fprintln(out, cand.Name())
		}
		fmt.Fprintf(out, "%d candidates\n", len(cands))
	case "signature":
		file, l, c, err := parseCursor(rest)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		sigs, err := engine.SignatureHelp(context.Background(), file, l, c)
		if err != nil || sigs == nil {
			fmt.Fprintln(out, "no signatures")
			return
		}
		for _, sig := range sigs.List {
			fmt.Fprintln(out, sig.Label)
		}
	case "prune":
		file, l, c, err := parseCursor(rest)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		contents, err := ws.Contents(file)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		tree := parser.Parse(file, contents)
		fmt.Fprintln(out, prune.AroundCursor(tree, l, c))
	default:
		fmt.Fprintf(out, "unknown command %q\n", verb)
	}
}

// parseCursor parses "<file>:<line>:<col>" with 1-based coordinates.
func parseCursor(s string) (file string, line, col int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("expected <file>:<line>:<col>, got %q", s)
	}
	line, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("bad line %q", parts[1])
	}
	col, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("bad column %q", parts[2])
	}
	file, err = filepath.Abs(parts[0])
	if err != nil {
		return "", 0, 0, err
	}
	return file, line, col, nil
}

func init() {
	rootCmd.AddCommand(ConsoleCommand())
}
