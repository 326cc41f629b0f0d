package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/healix-app/healix-go/internal/api"
	"github.com/healix-app/healix-go/internal/cli"
	"github.com/healix-app/healix-go/internal/config"
	"github.com/healix-app/healix-go/internal/service"
	"github.com/healix-app/healix-go/internal/store"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Logging.Format == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Debug("Configuration loaded successfully",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("data_dir", cfg.Storage.Dir),
	)

	// Initialize the local profile store
	st, err := store.NewOnDisk(cfg.Storage.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize local store", zap.Error(err))
	}

	// Initialize the backend session client
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, st, logger)

	// Initialize services
	app := &cli.App{
		Config:       cfg,
		Logger:       logger,
		Store:        st,
		Client:       client,
		Synchronizer: service.NewSynchronizer(st, client, logger),
		Profile:      service.NewProfileService(st, client, logger),
		Assistant:    service.NewAssistant(),
	}

	// Run the command tree under a signal-bound context so Ctrl-C
	// cancels in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(app)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
