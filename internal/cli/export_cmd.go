package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		flags    criteriaFlags
		output   string
		template bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project report workbook (.xlsx)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := output
			if path == "" {
				path = export.ReportFileName
				if template {
					path = export.TemplateFileName
				}
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			fail := func(err error) error {
				f.Close()
				os.Remove(path)
				return err
			}

			if template {
				if _, err := app.Export.ExportTemplate(ctx, f); err != nil {
					return fail(err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote import template to %s\n", path)
				return nil
			}

			email, err := app.currentUser()
			if err != nil {
				return fail(err)
			}
			criteria, err := flags.criteria(app.loc())
			if err != nil {
				return fail(err)
			}
			res, err := app.Export.Export(ctx, exportRequest(app.now(), email, criteria), f)
			if err != nil {
				return fail(err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d projects to %s\n", res.Rows, path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the standard report name)")
	cmd.Flags().BoolVar(&template, "template", false, "Write the blank import template instead of the report")

	return cmd
}
