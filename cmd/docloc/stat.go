package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/format"
	"github.com/c360studio/docloc/stats"
)

func statCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stat [catalog...]",
		Short: "Report translation progress",
		Long: `Stat parses the configured catalogs (or the given paths) and
prints per-catalog translation progress plus a total.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := app.findCatalogs(args)
			if err != nil {
				return err
			}

			summary := stats.NewSummary()
			for _, path := range paths {
				f, err := format.DecodeFile(path)
				if err != nil {
					return err
				}
				summary.Add(app.displayPath(path), stats.Collect(f))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATALOG\tLANG\tTRANSLATED\tFUZZY\tUNTRANSLATED\tOBSOLETE\tDONE")
			for _, path := range summary.Paths() {
				st := summary.PerFile[path]
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
					path, st.Language, st.Translated, st.Fuzzy, st.Untranslated, st.Obsolete, st.Percent())
			}
			if len(summary.PerFile) > 1 {
				total := summary.Totals()
				fmt.Fprintf(w, "TOTAL\t\t%d\t%d\t%d\t%d\t%.1f%%\n",
					total.Translated, total.Fuzzy, total.Untranslated, total.Obsolete, total.Percent())
			}
			return w.Flush()
		},
	}
}
