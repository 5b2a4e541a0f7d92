package main

import (
	"errors"
	"time"

	"github.com/lox/handscribe/cmd/handscribe/shared"
	"github.com/lox/handscribe/internal/config"
	"github.com/lox/handscribe/internal/feed"
)

// CaptureCmd records game frames from the source feed into a games file for
// later conversion.
type CaptureCmd struct {
	URL         string        `arg:"" optional:"" help:"Feed websocket URL (overrides config)"`
	Output      string        `short:"o" help:"Where to write captured games (overrides config)"`
	IdleTimeout time.Duration `help:"Stop after this long without a game frame"`
	Config      string        `help:"Path to HCL config file" default:"handscribe.hcl"`
	Debug       bool          `help:"Enable debug logging"`
}

func (c *CaptureCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	url := c.URL
	if url == "" {
		url = cfg.Capture.URL
	}
	if url == "" {
		return errors.New("capture requires a feed URL (argument or config)")
	}

	output := c.Output
	if output == "" {
		output = cfg.Capture.Output
	}

	idle := c.IdleTimeout
	if idle == 0 {
		idle = time.Duration(cfg.Capture.IdleTimeoutSeconds) * time.Second
	}

	client := feed.NewClient(url, logger, feed.WithIdleTimeout(idle))

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	batch, err := client.Capture(ctx)
	if err != nil && len(batch) == 0 {
		return err
	}
	if err != nil {
		logger.Warn("capture ended with error, saving what was collected", "error", err)
	}

	if err := feed.SaveFile(output, batch); err != nil {
		return err
	}
	logger.Info("capture complete", "games", len(batch), "output", output)
	return nil
}
