package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/canteiro/internal/httpserver"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var errNoJWTSecret = errors.New("no JWT secret configured: set CANTEIRO_JWT_SECRET")

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.HTTP.JWTSecret == "" {
				return errNoJWTSecret
			}
			if addr == "" {
				addr = app.Config.HTTP.Addr
			}
			logger := logging.OrNop(app.Logger)

			srv := httpserver.New(httpserver.Config{
				Addr:      addr,
				JWTSecret: app.Config.HTTP.JWTSecret,
				Location:  app.loc(),
			}, httpserver.Services{
				Query:  app.Query,
				Status: app.Status,
				Export: app.Export,
			}, httpserver.WithLogger(logger))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown error", zap.Error(err))
				return err
			}
			return <-errc
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to CANTEIRO_HTTP_ADDR)")

	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print an API bearer token for the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.HTTP.JWTSecret == "" {
				return errNoJWTSecret
			}
			email, err := app.currentUser()
			if err != nil {
				return err
			}
			u, err := app.Directory.GetUser(cmd.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("unknown user %q", email)
				}
				return err
			}

			token, err := httpserver.IssueToken(u.Email, app.Config.HTTP.JWTSecret, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
