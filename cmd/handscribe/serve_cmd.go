package main

import (
	"context"
	"time"

	"github.com/lox/handscribe/cmd/handscribe/shared"
	"github.com/lox/handscribe/internal/config"
	"github.com/lox/handscribe/internal/service"
)

// ServeCmd runs the HTTP render service.
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides config)"`
	Config string `help:"Path to HCL config file" default:"handscribe.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server := service.NewServer(addr, newRenderer(cfg, logger), logger)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
