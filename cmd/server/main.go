package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/server"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, logging.WithFormat(cfg.LogFormat))
	defer func() { _ = logger.Sync() }()

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	res, cleanup, err := server.InitializeResources(initCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialize resources", "store", cfg.StoreDriver, "events", cfg.Events.Driver, "err", err)
		os.Exit(1)
	}

	srv := server.New(cfg, res, logger)

	// Resources close only after the HTTP server has drained.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = shutdown.Graceful(
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
			shutdown.Func(func(context.Context) error {
				cleanup()
				return nil
			}),
		)
	}()

	logger.Info("job board server starting", "store", cfg.StoreDriver, "events", cfg.Events.Driver)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
		cleanup()
		_ = logger.Sync()
		os.Exit(1)
	}

	<-stopped
	logger.Info("server stopped")
}
