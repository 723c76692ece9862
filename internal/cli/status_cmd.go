package cli

import (
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status board for the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := app.currentUser()
			if err != nil {
				return err
			}
			criteria, err := flags.criteria(app.loc())
			if err != nil {
				return err
			}

			resp, err := app.Status.GetStatus(cmd.Context(), statusRequest(app.now(), email, criteria))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(resp, app.loc()))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
