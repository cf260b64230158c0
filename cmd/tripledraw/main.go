package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Train    TrainCmd         `cmd:"" default:"1" help:"Practice opening decisions in the terminal"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a single hand at a position"`
	Ranges   RangesCmd        `cmd:"" help:"Show the resolved ranges for a position"`
	Survey   SurveyCmd        `cmd:"" help:"Estimate how often each position opens"`
	Strategy StrategyCmd      `cmd:"" help:"Export or validate strategy files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tripledraw"),
		kong.Description("2-7 Triple Draw opening trainer"),
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
