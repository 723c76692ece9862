package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/canteiro/internal/cli"
	"github.com/alexanderramin/canteiro/internal/config"
	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/feed"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, logging.Format(cfg.Log.Format))
	if err != nil {
		return err
	}
	defer logger.Sync()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	contractorRepo := repository.NewSQLiteContractorRepo(database)
	rosterRepo := repository.NewSQLiteRosterRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Change notification: Redis pub/sub when configured, polling otherwise.
	var notifier feed.Notifier = feed.NopNotifier{}
	if cfg.Redis.Addr != "" {
		rdb := feed.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		notifier = feed.NewRedisNotifier(rdb, cfg.Redis.Channel, logger)
		logger.Debug("redis notifier enabled", zap.String("addr", cfg.Redis.Addr))
	}

	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, notifier, observer),
		Directory: service.NewDirectoryService(userRepo, contractorRepo, rosterRepo),
		Query:     service.NewQueryService(userRepo, projectRepo, loc, logger, observer),
		Status:    service.NewStatusService(userRepo, projectRepo, loc, logger, observer),
		Export:    service.NewExportService(userRepo, projectRepo, loc, logger, observer),
		Import:    service.NewImportService(uow, notifier, loc, observer),
		Sync:      service.NewSyncService(userRepo, projectRepo, notifier, cfg.Feed.PollInterval, loc, logger),

		Config:   cfg,
		Location: loc,
		Logger:   logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
