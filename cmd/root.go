// Copyright © 2025 The javals authors

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "javals",
	Short: "javals — Java language service",
	Long: `javals is the analysis core of an editor-integrated language service
for Java. It answers interactive queries — identifier completion, member
completion, signature help, diagnostics, and symbol navigation — against
files that may be in-flight edits held only in memory.

Getting started:
  javals lsp                        Start the language server on stdio
  javals lsp --port 7998            Start the language server on TCP
  javals index src/                 Print the source index of a directory
  javals check src/Main.java        Report diagnostics for files
  javals console src/               Interactive query console

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "javals lsp" for .java files.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if quietFlag || viper.GetBool("quiet") {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.javals.yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "silence all logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".javals" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".javals")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil && !quietFlag {
		log.Printf("using config file: %s", viper.ConfigFileUsed())
	}
}
