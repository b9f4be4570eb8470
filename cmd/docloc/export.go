package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/export"
	"github.com/c360studio/docloc/format"
)

func exportCmd(app *appContext) *cobra.Command {
	var (
		formatName string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export <catalog>",
		Short: "Export the active view of a catalog",
		Long: `Export renders a catalog's active entries (obsolete entries
excluded) as JSON, YAML, or CSV for review tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := export.Format(formatName)
			if _, ok := export.GetFormatInfo(target); !ok {
				return fmt.Errorf("unsupported format %q (supported: %v)", formatName, export.Formats())
			}

			f, err := format.DecodeFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}
			return export.Export(out, f, target)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", string(export.FormatJSON), "Export format (json, yaml, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
