package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the HTTP viewer service"`
	Inspect InspectCmd       `cmd:"" help:"Print a report for one node of a solver tree"`
	Export  ExportCmd        `cmd:"" help:"Write JSON reports for a solver tree to a directory"`
	Browse  BrowseCmd        `cmd:"" help:"Browse a solver tree interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("solverview"),
		kong.Description("Inspect poker solver game trees"),
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
