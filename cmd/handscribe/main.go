package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Convert ConvertCmd       `cmd:"" help:"Convert a captured games file into hand-history text"`
	Serve   ServeCmd         `cmd:"" help:"Serve the renderer over HTTP"`
	Capture CaptureCmd       `cmd:"" help:"Capture game records from a websocket feed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handscribe"),
		kong.Description("Reconstructs poker hand histories from scraped game records"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
