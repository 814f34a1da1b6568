package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	NoColor bool `name:"no-color" help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Sim        SimCmd           `cmd:"" help:"Simulate a batch of games with one strategy"`
	Table      TableCmd         `cmd:"" help:"Run every experiment in a file and print the results table"`
	Replay     ReplayCmd        `cmd:"" help:"Print the transcript of one game"`
	Strategies StrategiesCmd    `cmd:"" help:"List the available strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hanabi"),
		kong.Description("Hanabi strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
