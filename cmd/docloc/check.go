package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/catalog"
	"github.com/c360studio/docloc/format"
)

func checkCmd(app *appContext) *cobra.Command {
	var listUntranslated bool

	cmd := &cobra.Command{
		Use:   "check [catalog...]",
		Short: "Validate catalogs",
		Long: `Check parses the configured catalogs (or the given paths) and
reports structural problems: parse errors, duplicate entries, missing
or unparsable headers, bad language tags, and broken plural rules.

Untranslated entries are not errors; documentation consumers fall
back to the source string. Use --untranslated to list them anyway.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := app.findCatalogs(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := 0
			for _, path := range paths {
				display := app.displayPath(path)

				f, err := format.DecodeFile(path)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", display, err)
					problems++
					continue
				}

				problems += checkHeader(out, display, f)

				if listUntranslated {
					for _, m := range f.Untranslated() {
						fmt.Fprintf(out, "%s: untranslated: %s\n", display, m.Key())
					}
				}
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Fprintf(out, "%d catalog(s) OK\n", len(paths))
			return nil
		},
	}

	cmd.Flags().BoolVar(&listUntranslated, "untranslated", false, "List untranslated entries")
	return cmd
}

func checkHeader(out io.Writer, display string, f *catalog.File) int {
	h := f.Header()
	if h == nil {
		fmt.Fprintf(out, "%s: missing header entry\n", display)
		return 1
	}

	problems := 0
	if h.Language() == "" {
		fmt.Fprintf(out, "%s: header has no Language field\n", display)
		problems++
	} else if _, err := h.LanguageTag(); err != nil {
		fmt.Fprintf(out, "%s: invalid Language %q: %v\n", display, h.Language(), err)
		problems++
	}
	if _, err := h.PluralRule(); err != nil {
		fmt.Fprintf(out, "%s: %v\n", display, err)
		problems++
	}
	return problems
}
