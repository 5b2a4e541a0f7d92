// Package config loads the optional HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the full configuration tree.
type Config struct {
	Server     *ServerSettings  `hcl:"server,block"`
	Render     *RenderSettings  `hcl:"render,block"`
	Capture    *CaptureSettings `hcl:"capture,block"`
	Currencies []CurrencySymbol `hcl:"currency,block"`
}

// ServerSettings configures the HTTP render service.
type ServerSettings struct {
	Addr string `hcl:"addr,optional"`
}

// RenderSettings configures the hand-history document labels.
type RenderSettings struct {
	Room    string `hcl:"room,optional"`
	Variant string `hcl:"variant,optional"`
}

// CaptureSettings configures the feed capture defaults.
type CaptureSettings struct {
	URL                string `hcl:"url,optional"`
	Output             string `hcl:"output,optional"`
	IdleTimeoutSeconds int    `hcl:"idle_timeout_seconds,optional"`
}

// CurrencySymbol adds or overrides a currency display symbol.
type CurrencySymbol struct {
	Code   string `hcl:"code,label"`
	Symbol string `hcl:"symbol"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server:  &ServerSettings{Addr: ":8080"},
		Render:  &RenderSettings{},
		Capture: &CaptureSettings{Output: "games.json", IdleTimeoutSeconds: 30},
	}
}

// Load reads an HCL config file. A missing file is not an error; defaults
// apply, matching how the server config behaves elsewhere in this toolchain.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	defaults := Default()
	if cfg.Server == nil {
		cfg.Server = defaults.Server
	} else if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Render == nil {
		cfg.Render = defaults.Render
	}
	if cfg.Capture == nil {
		cfg.Capture = defaults.Capture
	} else {
		if cfg.Capture.Output == "" {
			cfg.Capture.Output = defaults.Capture.Output
		}
		if cfg.Capture.IdleTimeoutSeconds == 0 {
			cfg.Capture.IdleTimeoutSeconds = defaults.Capture.IdleTimeoutSeconds
		}
	}
	return &cfg, nil
}
