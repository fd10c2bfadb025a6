package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/jardin/internal/cli"
	"github.com/alexanderramin/jardin/internal/config"
	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/logging"
	"github.com/alexanderramin/jardin/internal/repository"
	"github.com/alexanderramin/jardin/internal/service"
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
	cfg, err := config.Load(os.Getenv("JARDIN_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	plans := repository.NewSQLitePlanRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	cities := repository.NewSQLiteCityRepo(database)
	teams := repository.NewSQLiteTeamRepo(database)
	clients := repository.NewSQLiteClientRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging is opt-in.
	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewZapUseCaseObserver(logger))
	}

	app := &cli.App{
		Catalog:   service.NewCatalogService(plans, tasks, cities, teams, clients, uow, observers...),
		Clients:   service.NewClientService(clients, cities, uow),
		Quotes:    service.NewQuoteService(repository.NewSQLiteQuoteRepo(database), uow, cfg.CompanyName, observers...),
		Contracts: service.NewContractService(repository.NewSQLiteContractRepo(database), uow, cfg.CompanyName, observers...),
		Visits:    service.NewVisitService(repository.NewSQLiteVisitRepo(database), uow, observers...),
		Config:    cfg,
		Logger:    logger,
	}

	// Forms and the crew sheet only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting", zap.String("db", cfg.DBPath))
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
