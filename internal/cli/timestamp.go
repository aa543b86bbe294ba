package cli

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
)

// TimestampCmd converts a timestamp to a datetime or a datetime to a timestamp
type TimestampCmd struct {
	Input string `arg:"" optional:"" help:"Unix timestamp or datetime (YYYY-MM-DD HH:MM:SS[.fff]); '-' reads stdin"`
	Unit  string `help:"Unit for output: s, ms, us or ns" short:"u" enum:"s,ms,us,ns," default:"" predictor:"unit"`
	Now   bool   `help:"Convert the current time"`
}

// Run executes the timestamp command. Without input it shows the remembered
// conversion, which on first use is the current time in milliseconds.
func (cmd *TimestampCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config, logger *zerolog.Logger, store state.Store, engine *timestamp.Engine) error {
	input, ok, err := readInput(cmd.Input)
	if err != nil {
		return err
	}

	run := toolRun{store: store, engine: engine, cfg: cfg, logger: logger}
	outcome, snap, err := run.apply("ts", func(snap *state.Snapshot) (string, error) {
		if cmd.Unit != "" {
			unit, err := timestamp.ParseUnit(cmd.Unit)
			if err != nil {
				return "", output.NewCLIError(output.ExitUsage, err.Error())
			}
			snap.Timestamp.Unit = unit
		}

		switch {
		case cmd.Now:
			return nowInput(time.Now(), snap.Timestamp.Unit), nil
		case ok:
			return input, nil
		default:
			return snap.Timestamp.Input, nil
		}
	})
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return toolError(outcome.Err)
	}

	return emit(fp, globals, output.Result{
		Tool:    "ts",
		Input:   snap.Timestamp.Input,
		Output:  outcome.Output,
		Warning: outcome.Warning,
	})
}

// nowInput renders now as an integer timestamp in unit
func nowInput(now time.Time, unit timestamp.Unit) string {
	n, err := timestamp.ToUnit(now, unit)
	if err != nil {
		return strconv.FormatInt(now.Unix(), 10)
	}
	return strconv.FormatInt(n, 10)
}
