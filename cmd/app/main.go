package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// @title Dispatch API
// @version 1.0
// @description Parcel lifecycle and driver assignment.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(logger.Options{
		Production: config.IsProduction(),
		Level:      config.LogLevel,
		Service:    "dispatch",
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cmd.OpenStore(ctx, config)
	if err != nil {
		return fmt.Errorf("open %s store: %w", config.Store.Driver, err)
	}

	app := cmd.NewCompositionRoot(config, store, log)
	e := app.CreateHTTPServer()
	// Streaming handlers end with the request context.
	e.Server.BaseContext = func(net.Listener) context.Context { return ctx }

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server starting",
			zap.String("port", config.HTTPPort),
			zap.String("store", config.Store.Driver),
		)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	var failure error
	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			failure = err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err = app.Close(shutdownCtx); err != nil {
		log.Warn("close", zap.Error(err))
	}
	return failure
}
