package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/handscribe/cmd/handscribe/shared"
	"github.com/lox/handscribe/internal/config"
	"github.com/lox/handscribe/internal/feed"
	"github.com/lox/handscribe/internal/history"
)

// ConvertCmd renders a captured games file into hand-history text.
type ConvertCmd struct {
	Input  string `arg:"" optional:"" default:"games.json" help:"Captured games file (JSON object keyed by hand id)"`
	Output string `short:"o" help:"Write hand histories to this file instead of stdout"`
	Config string `help:"Path to HCL config file" default:"handscribe.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ConvertCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	batch, err := feed.LoadFile(c.Input)
	if err != nil {
		return err
	}

	renderer := newRenderer(cfg, logger)
	text := renderer.RenderBatch(batch)

	if c.Output == "" {
		fmt.Print(text)
	} else {
		if err := os.WriteFile(c.Output, []byte(text), 0644); err != nil {
			return fmt.Errorf("write %s: %w", c.Output, err)
		}
	}

	logger.Info("converted hands", "hands", len(batch), "bytes", len(text))
	return nil
}

// newRenderer builds a renderer from the config file's render and currency
// settings.
func newRenderer(cfg *config.Config, logger *log.Logger) *history.Renderer {
	opts := []history.Option{}
	if cfg.Render.Room != "" {
		opts = append(opts, history.WithRoom(cfg.Render.Room))
	}
	if cfg.Render.Variant != "" {
		opts = append(opts, history.WithVariant(cfg.Render.Variant))
	}
	for _, cur := range cfg.Currencies {
		opts = append(opts, history.WithCurrencySymbol(cur.Code, cur.Symbol))
	}
	return history.NewRenderer(logger, opts...)
}
