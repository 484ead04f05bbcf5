// Copyright © 2025 The javals authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javakit/javals/workspace"
)

// IndexCommand creates the "index" cobra command, a debugging aid that
// prints the source index for a set of workspace roots.
func IndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <root>...",
		Short: "Print the source index for workspace roots",
		Long: `Walk the given directories the way the language server does on
initialization and print every indexed source file with its package
name and modification time. Symbolic link directories are skipped;
module-info.java is hidden from the index.`,
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
			for _, file := range ws.All() {
				pkg, err := ws.PackageName(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
					continue
				}
				mod, err := ws.Modified(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
					continue
				}
				if pkg == "" {
					pkg = "(default)"
				}
				fmt.Printf("%s\t%s\t%s\n", file, pkg, mod.Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("%d files, source roots: %v\n", len(ws.All()), ws.SourceRoots())
			return nil
		},
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(IndexCommand())
}
