package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/config"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Projects  service.ProjectService
	Directory service.DirectoryService
	Query     service.QueryService
	Status    service.StatusService
	Export    service.ExportService
	Import    service.ImportService
	Sync      service.SyncService

	Config   config.Config
	Location *time.Location
	Logger   *zap.Logger

	// Now reads the clock. Nil means the wall clock.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. When true, running
	// canteiro without a subcommand opens the dashboard.
	IsInteractive func() bool

	// as is the --as flag value for the running command.
	as string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// currentUser returns the acting user's email: --as, then the configured
// default.
func (a *App) currentUser() (string, error) {
	email := strings.TrimSpace(a.as)
	if email == "" {
		email = strings.TrimSpace(a.Config.User)
	}
	if email == "" {
		return "", fmt.Errorf("no user selected: pass --as or set CANTEIRO_USER")
	}
	return email, nil
}

// NewRootCmd creates the top-level "canteiro" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "canteiro",
		Short:         "Work order tracking for plant maintenance projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runDashboard(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&app.as, "as", "", "Act as this user (email); defaults to CANTEIRO_USER")

	root.AddCommand(
		newProjectCmd(app),
		newStatusCmd(app),
		newExportCmd(app),
		newUserCmd(app),
		newContractorCmd(app),
		newRosterCmd(app),
		newTokenCmd(app),
		newServeCmd(app),
		newDashboardCmd(app),
	)

	return root
}
