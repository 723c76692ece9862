package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectProgressCmd(app),
		newProjectActivityCmd(app),
		newProjectObserveCmd(app),
		newProjectAgendaCmd(app),
		newProjectClearanceCmd(app),
		newProjectCompleteCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		name, order, factory, contractorID, area string
		start, end                               string
		leaders                                  []string
		critical                                 bool
		progress                                 int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.loc()

			p := &domain.Project{
				Name:        strings.TrimSpace(name),
				OrderNumber: strings.TrimSpace(order),
				Factory:     strings.TrimSpace(factory),
				Area:        strings.TrimSpace(area),
				Leader:      leaders,
				Critical:    critical,
				Progress:    progress,
			}

			var err error
			if p.StartDate, err = parseDay(start, loc, false); err != nil {
				return err
			}
			if p.EstimatedCompletionDate, err = parseDay(end, loc, true); err != nil {
				return err
			}

			if contractorID != "" {
				contractors, err := app.Directory.ListContractors(ctx)
				if err != nil {
					return err
				}
				for _, c := range contractors {
					if c.ID == contractorID {
						p.ContractorID, p.Contractor = c.ID, c.Name
					}
				}
				if p.ContractorID == "" {
					return fmt.Errorf("unknown contractor %q", contractorID)
				}
			}

			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&order, "order", "", "Work order number")
	cmd.Flags().StringVar(&factory, "factory", "", "Factory")
	cmd.Flags().StringVar(&contractorID, "contractor", "", "Contractor ID")
	cmd.Flags().StringVar(&area, "area", "", "Plant area")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Estimated completion date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&leaders, "leader", nil, "Leader name (repeatable)")
	cmd.Flags().BoolVar(&critical, "critical", false, "Mark as critical")
	cmd.Flags().IntVar(&progress, "progress", 0, "Initial progress (0-100)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := app.currentUser()
			if err != nil {
				return err
			}
			criteria, err := flags.criteria(app.loc())
			if err != nil {
				return err
			}

			now := app.now()
			resp, err := app.Query.ListProjects(cmd.Context(), queryRequest(now, email, criteria))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Projects) == 0 {
				fmt.Fprintf(out, "No projects found (%d visible).\n", resp.Total)
				return nil
			}
			fmt.Fprintln(out, formatter.FormatProjectList(resp.Projects, now, app.loc()))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(p, app.now(), app.loc()))
			return nil
		},
	}
}

func newProjectProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Report progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pct, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
			if err != nil {
				return fmt.Errorf("invalid progress %q", args[1])
			}
			if err := app.Projects.SetProgress(ctx, projectID, pct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress of %s set to %d%%\n", short(projectID), pct)
			return nil
		},
	}
}

func newProjectActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activity ID TEXT",
		Short: "Append an activity summary entry as the current user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			email, err := app.currentUser()
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := app.Projects.AppendActivity(ctx, projectID, text, email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activity recorded on %s\n", short(projectID))
			return nil
		},
	}
}

func newProjectObserveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "observe ID TEXT",
		Short: "Append an observation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.AppendObservation(ctx, projectID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Observation recorded on %s\n", short(projectID))
			return nil
		},
	}
}

func newProjectAgendaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda ID DATE",
		Short: "Schedule the project on a day (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(args[1], app.loc(), false)
			if err != nil {
				return err
			}
			if day == nil {
				return fmt.Errorf("agenda date is required")
			}
			if err := app.Projects.SetAgenda(ctx, projectID, *day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Agenda of %s set to %s\n", short(projectID), day.Format(dateLayout))
			return nil
		},
	}
}

func newProjectClearanceCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "clearance ID CHECKPOINT",
		Short: "Record a safety checkpoint clearance",
		Long: "Record a safety checkpoint clearance. Checkpoints:\n  " +
			strings.Join(checkpointNames(), "\n  "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			cp, ok := domain.ParseCheckpoint(args[1])
			if !ok {
				return fmt.Errorf("unknown checkpoint %q (expected one of: %s)", args[1], strings.Join(checkpointNames(), ", "))
			}

			when := app.now()
			if at != "" {
				if when, err = parseMoment(at, app.loc()); err != nil {
					return err
				}
			}
			if err := app.Projects.SetClearance(ctx, projectID, cp, when); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared on %s\n", cp, short(projectID))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Clearance time (YYYY-MM-DD HH:MM); defaults to now")

	return cmd
}

func newProjectCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a project complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Complete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed project %s\n", short(projectID))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", short(projectID))
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON snapshot or a filled-in .xlsx template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d projects, %d contractors, %d users, %d roster entries\n",
				result.Projects, result.Contractors, result.Users, result.Roster)
			for _, w := range result.Warnings {
				fmt.Fprintln(out, formatter.StyleYellow.Render("  WARNING: "+w))
			}
			return nil
		},
	}
}

func checkpointNames() []string {
	names := make([]string, len(domain.Checkpoints))
	for i, c := range domain.Checkpoints {
		names[i] = string(c)
	}
	return names
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
