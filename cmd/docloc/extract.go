package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/extract"
	"github.com/c360studio/docloc/format"
)

func extractCmd(app *appContext) *cobra.Command {
	var (
		output     string
		sourceRoot string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a translation template from documentation sources",
		Long: `Extract walks the configured source tree, pulls translatable
strings out of Python docstrings and HTML pages, and writes a POT
template. Merge the template into per-language catalogs with
"docloc merge".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := sourceRoot
			if root == "" {
				root = filepath.Join(app.cfg.Project.Root, app.cfg.Extract.SourceRoot)
			}

			tmpl, err := extract.Run(cmd.Context(), extract.DefaultRegistry, root,
				app.cfg.Extract.Globs, extract.TemplateOptions{
					Project:     app.cfg.Project.Name,
					BugsAddress: app.cfg.Project.BugsAddress,
					Generator:   appName + " " + Version,
				})
			if err != nil {
				return err
			}

			if err := format.EncodeFile(output, tmpl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d message(s) extracted\n",
				output, len(tmpl.Active()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "messages.pot", "Template output path")
	cmd.Flags().StringVar(&sourceRoot, "source-root", "", "Override the configured source root")
	return cmd
}
