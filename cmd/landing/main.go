package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/landing/internal/app"
	"github.com/dmitrymomot/landing/pkg/config"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg app.Config
	config.MustLoad(&cfg)

	log := app.NewLogger(cfg)
	logger.SetAsDefault(log)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx, httpserver.WithoutSignals()); err != nil {
		log.Error("Server stopped with error", logger.Component("http"), logger.Error(err))
		a.Close()
		os.Exit(1)
	}
}
