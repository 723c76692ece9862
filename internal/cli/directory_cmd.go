package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their contractor access",
	}
	cmd.AddCommand(newUserAddCmd(app), newUserListCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var (
		email, name, role string
		contractorIDs     []string
	)

	roles := make([]string, 0, len(domain.ValidRoles))
	for _, r := range []domain.UserRole{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer, domain.RoleTS, domain.RoleFast} {
		roles = append(roles, string(r))
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{
				Email:         email,
				Name:          strings.TrimSpace(name),
				Role:          domain.UserRole(strings.ToLower(strings.TrimSpace(role))),
				ContractorIDs: contractorIDs,
			}
			if err := app.Directory.AddUser(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved user %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleViewer), "Role ("+strings.Join(roles, "|")+")")
	cmd.Flags().StringSliceVar(&contractorIDs, "contractor", nil, "Contractor ID the user may read (repeatable)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			users, err := app.Directory.ListUsers(ctx)
			if err != nil {
				return err
			}
			contractors, err := app.Directory.ListContractors(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users, contractors))
			return nil
		},
	}
}

func newContractorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contractor",
		Short: "Manage contractors",
	}
	cmd.AddCommand(newContractorAddCmd(app), newContractorListCmd(app))
	return cmd
}

func newContractorAddCmd(app *App) *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a contractor",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Contractor{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}
			if err := app.Directory.AddContractor(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contractor %s [%s]\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Contractor ID (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "Contractor name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContractorListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contractors",
		RunE: func(cmd *cobra.Command, args []string) error {
			contractors, err := app.Directory.ListContractors(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContractorList(contractors))
			return nil
		},
	}
}

func newRosterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the contractor employee roster",
	}
	cmd.AddCommand(newRosterAddCmd(app), newRosterListCmd(app))
	return cmd
}

func newRosterAddCmd(app *App) *cobra.Command {
	var company, employee string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee under a contractor trade name",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.RosterEntry{
				NomeFantasia: strings.TrimSpace(company),
				Funcionario:  strings.TrimSpace(employee),
			}
			if err := app.Directory.AddRosterEntry(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", e.Funcionario, e.NomeFantasia)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Contractor trade name")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee name")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newRosterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Directory.ListRoster(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoster(entries))
			return nil
		},
	}
}
