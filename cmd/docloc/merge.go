package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/format"
	"github.com/c360studio/docloc/merge"
)

func mergeCmd(app *appContext) *cobra.Command {
	var (
		output    string
		markFuzzy bool
	)

	cmd := &cobra.Command{
		Use:   "merge <catalog> <template>",
		Short: "Merge a template into a catalog",
		Long: `Merge updates a translation catalog against a freshly extracted
template: new source strings are appended untranslated, existing
translations are kept, and strings that disappeared upstream are
flagged obsolete. Nothing is deleted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, templatePath := args[0], args[1]

			def, err := format.DecodeFile(catalogPath)
			if err != nil {
				return err
			}
			tmpl, err := format.DecodeFile(templatePath)
			if err != nil {
				return err
			}

			merged, report, err := merge.Merge(def, tmpl, merge.Options{MarkFuzzy: markFuzzy})
			if err != nil {
				return err
			}

			dest := output
			if dest == "" {
				dest = catalogPath
			}
			if err := format.EncodeFile(dest, merged); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d new, %d updated, %d kept, %d obsoleted, %d revived\n",
				app.displayPath(dest), report.New, report.Updated, report.Kept, report.Obsoleted, report.Revived)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the merged catalog here instead of in place")
	cmd.Flags().BoolVar(&markFuzzy, "fuzzy", true, "Flag revived translations fuzzy for review")
	return cmd
}
