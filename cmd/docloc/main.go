// Package main provides the docloc binary entry point.
// Docloc is a documentation localization toolkit: it validates,
// merges, and watches gettext translation catalogs and extracts
// fresh templates from documentation sources.
package main

import (
	"fmt"
	"os"
	"runtime"

	// Register extractors via init()
	_ "github.com/c360studio/docloc/extract/html"
	_ "github.com/c360studio/docloc/extract/python"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "docloc"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &appContext{}

	cmd := &cobra.Command{
		Use:   "docloc",
		Short: "Documentation localization toolkit",
		Long: `Docloc manages gettext translation catalogs for documentation
pipelines.

It provides:
- Catalog validation and translation-progress reporting
- Template extraction from Python docstrings and HTML pages
- Template merging with obsolete-entry retention
- Live catalog watching with NATS events and Prometheus metrics

Catalogs are plain PO files; docloc's writer emits canonical
formatting so unchanged catalogs round-trip byte for byte.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		statCmd(app),
		checkCmd(app),
		mergeCmd(app),
		exportCmd(app),
		extractCmd(app),
		watchCmd(app),
	)

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
