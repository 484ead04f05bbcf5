// Copyright © 2025 The javals authors

package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javakit/javals/lsp"
	"github.com/javakit/javals/telemetry"
)

// LSPCommand creates the "lsp" cobra command. Embedders pass
// WithFacade and WithClassCatalog to wire a real compiler front end.
func LSPCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, o := range opts {
		o(&cfg)
	}

	var (
		stdio     bool
		port      int
		classlist string
		backend   string
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the Java language server",
		Long: `Start an LSP server for Java source files.

The server answers completion, signature help, diagnostics, and
go-to-declaration queries. Workspace roots come from the client's
initialize request; in-flight edits are held in memory and override
the on-disk contents.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  javals lsp                         Start with stdio transport
  javals lsp --port 7998             Start with TCP on port 7998
  javals lsp --classlist jdk.txt     Load a class catalog`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			serverOpts := []lsp.Option{
				lsp.WithFacade(cfg.resolveFacade()),
			}
			jdk, classPath := cfg.jdkClasses, cfg.classPathClasses
			if classlist != "" {
				j, c, err := readClassList(classlist)
				if err != nil {
					fmt.Fprintf(os.Stderr, "read class list: %v\n", err)
					os.Exit(1)
				}
				jdk = append(jdk, j...)
				classPath = append(classPath, c...)
			}
			serverOpts = append(serverOpts, lsp.WithClassCatalog(jdk, classPath))

			switch backend {
			case "otel":
				shutdown := telemetry.InstallOpenTelemetry()
				defer shutdown()
				serverOpts = append(serverOpts,
					lsp.WithAnnotator(telemetry.NewOpenTelemetryAnnotator()))
			case "opencensus":
				serverOpts = append(serverOpts,
					lsp.WithAnnotator(telemetry.NewOpenCensusAnnotator()))
			}

			srv := lsp.New(serverOpts...)

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("javals LSP server listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().StringVar(&classlist, "classlist", "",
		"File of newline-separated qualified class names for completion")
	cmd.Flags().StringVar(&backend, "trace", "",
		`Tracing backend: "otel" or "opencensus" (default none)`)

	return cmd
}

// readClassList splits a catalog file into JDK and classpath names by
// the platform package prefixes.
func readClassList(path string) (jdk, classPath []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if strings.HasPrefix(name, "java.") || strings.HasPrefix(name, "javax.") ||
			strings.HasPrefix(name, "jdk.") {
			jdk = append(jdk, name)
		} else {
			classPath = append(classPath, name)
		}
	}
	return jdk, classPath, scanner.Err()
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
