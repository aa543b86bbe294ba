package main

import (
	"errors"
	"os"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/handy/internal/cli"
	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("handy"),
		kong.Description("Handy converters for timestamps, JSON, URLs and stack traces"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Answer shell completion requests before normal parsing
	kongplete.Complete(parser,
		kongplete.WithPredictor("unit", complete.PredictSet("s", "ms", "us", "ns")),
		kongplete.WithPredictor("conversion", complete.PredictSet("none", "serialize", "deserialize")),
		kongplete.WithPredictor("format", complete.PredictSet("none", "pretty", "minimize")),
		kongplete.WithPredictor("mode", complete.PredictSet("decode", "encode")),
		kongplete.WithPredictor("ending", complete.PredictSet("lf", "crlf")),
		kongplete.WithPredictor("tool", complete.PredictSet("ts", "json", "url", "lines")),
		kongplete.WithPredictor("config-key", complete.PredictSet(config.Keys()...)),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Hook failures arrive wrapped in a kong.ParseError; plain usage errors print usage
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			os.Exit(output.Report(output.New("plain"), cliErr))
		}
		parser.FatalIfErrorf(err)
	}

	// Run command with bound dependencies
	if err := ctx.Run(); err != nil {
		os.Exit(output.Report(output.New("plain"), err))
	}
}
