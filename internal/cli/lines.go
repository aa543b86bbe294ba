package cli

import (
	"github.com/rs/zerolog"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/lineformat"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
)

// LinesCmd splits a stack trace whose line breaks were escaped
type LinesCmd struct {
	Input  string `arg:"" optional:"" help:"Escaped stack trace; '-' reads stdin"`
	Ending string `help:"Escaped line ending in the input: lf (\\n) or crlf (\\r\\n)" enum:"lf,crlf," default:"" predictor:"ending"`
}

// Run executes the lines command. Code locations are highlighted in rich output.
func (cmd *LinesCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config, logger *zerolog.Logger, store state.Store, engine *timestamp.Engine) error {
	input, ok, err := readInput(cmd.Input)
	if err != nil {
		return err
	}
	if !ok {
		return errNoInput
	}

	run := toolRun{store: store, engine: engine, cfg: cfg, logger: logger}
	outcome, _, err := run.apply("lines", func(snap *state.Snapshot) (string, error) {
		if cmd.Ending != "" {
			ending, err := lineformat.ParseEnding(cmd.Ending)
			if err != nil {
				return "", output.NewCLIError(output.ExitUsage, err.Error())
			}
			snap.Lines.Ending = ending
		}
		return input, nil
	})
	if err != nil {
		return err
	}

	return emit(fp, globals, output.Result{
		Tool:      "lines",
		Input:     input,
		Output:    outcome.Output,
		Highlight: lineformat.IsCodeLine,
	})
}
