package cli

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/jsonconv"
	"github.com/semmy-space/handy/internal/lineformat"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/tools"
)

// errNoInput is returned by commands that need input and got none
var errNoInput = output.NewCLIError(output.ExitUsage, "no input").
	WithHint("Pass INPUT as an argument, '-' to read stdin, or pipe text in")

// readInput resolves the INPUT argument. "-" reads stdin, and so does an empty
// argument when stdin is not a terminal. ok is false when there is no input.
func readInput(arg string) (string, bool, error) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return inputFrom(arg, os.Stdin, interactive)
}

func inputFrom(arg string, r io.Reader, interactive bool) (string, bool, error) {
	if arg != "" && arg != "-" {
		return arg, true, nil
	}
	if arg == "" && interactive {
		return "", false, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, output.Errorf(output.ExitGeneral, "failed to read stdin: %v", err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	if text == "" && arg == "" {
		return "", false, nil
	}
	return text, true, nil
}

// seedSnapshot fills in missing tool states. Config defaults apply only to tool
// states created here; remembered options win over config.
func seedSnapshot(snap *state.Snapshot, cfg *config.Config, engine *timestamp.Engine, now time.Time) {
	freshJSON := snap.JSON == nil
	freshLines := snap.Lines == nil

	unit := timestamp.Milliseconds
	if cfg.DefaultUnit != "" {
		if u, err := timestamp.ParseUnit(cfg.DefaultUnit); err == nil {
			unit = u
		}
	}
	snap.Seed(engine, now, unit)

	if freshJSON {
		if cfg.JSONFormat != "" {
			if f, err := jsonconv.ParseFormat(cfg.JSONFormat); err == nil {
				snap.JSON.Options.Format = f
			}
		}
		snap.JSON.Options.Pythonic = config.Bool(cfg.Pythonic)
	}
	if freshLines && cfg.LineEnding != "" {
		if e, err := lineformat.ParseEnding(cfg.LineEnding); err == nil {
			snap.Lines.Ending = e
		}
	}
}

// toolRun is one converter invocation against the state store
type toolRun struct {
	store  state.Store
	engine *timestamp.Engine
	cfg    *config.Config
	logger *zerolog.Logger
}

// apply loads the remembered state, lets prepare adjust options and choose the
// input, runs the tool and writes the state back. Tool failures are recorded in
// the state and returned in the outcome; only prepare and store errors abort.
func (r toolRun) apply(id string, prepare func(snap *state.Snapshot) (string, error)) (tools.Outcome, *state.Snapshot, error) {
	var (
		outcome  tools.Outcome
		snapshot *state.Snapshot
		prepErr  error
	)

	start := time.Now()
	err := r.store.Update(func(snap *state.Snapshot) error {
		seedSnapshot(snap, r.cfg, r.engine, start)

		input, err := prepare(snap)
		if err != nil {
			prepErr = err
			return err
		}

		reg := tools.FromSnapshot(snap, r.engine)
		if err := reg.Select(id); err != nil {
			prepErr = output.NewCLIError(output.ExitUsage, err.Error()).
				WithHint("Run 'handy tools list' to see available converters")
			return prepErr
		}
		snap.Active = id

		outcome = reg.Active().Apply(input)
		snapshot = snap
		return nil
	})
	if prepErr != nil {
		return tools.Outcome{}, nil, prepErr
	}
	if err != nil {
		return tools.Outcome{}, nil, output.Errorf(output.ExitStateError, "state: %v", err).
			WithHint("Retry with --no-state to skip the remembered state")
	}

	r.logger.Debug().
		Str("tool", id).
		Dur("took", time.Since(start)).
		Bool("failed", outcome.Err != nil).
		Msg("converted")

	return outcome, snapshot, nil
}

// toolError maps a converter failure to a CLI error with a matching exit code
func toolError(err error) error {
	var (
		parseErr  *jsonconv.ParseError
		escapeErr url.EscapeError
	)

	switch {
	case errors.Is(err, timestamp.ErrTimeResolution):
		return output.NewCLIError(output.ExitTimeResolution, err.Error()).
			WithHint("The datetime does not exist in this timezone, usually a daylight saving gap; try --tz")
	case errors.Is(err, timestamp.ErrInvalidInput):
		return output.NewCLIError(output.ExitInvalidInput, err.Error()).
			WithHint("Expected a Unix timestamp or a datetime like 2006-01-02 15:04:05")
	case errors.Is(err, timestamp.ErrOutOfRange):
		return output.NewCLIError(output.ExitInvalidInput, err.Error()).
			WithHint("Pick a coarser unit with --unit")
	case errors.As(err, &parseErr):
		return output.NewCLIError(output.ExitParse, err.Error())
	case errors.As(err, &escapeErr):
		return output.NewCLIError(output.ExitParse, err.Error())
	default:
		return output.NewCLIError(output.ExitGeneral, err.Error())
	}
}

// emit prints a tool result and copies its output when --copy is set
func emit(fp *FormatterProvider, globals *Globals, res output.Result) error {
	if err := fp.Formatter.PrintResult(res); err != nil {
		return err
	}
	if !globals.Copy || res.Output == "" {
		return nil
	}
	return copyToClipboard(res.Output)
}

func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return output.NewCLIError(output.ExitClipboard, "clipboard is not supported on this system").
			WithHint("Install xclip, xsel or wl-clipboard")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return output.NewCLIError(output.ExitClipboard, fmt.Sprintf("failed to copy: %v", err))
	}
	return nil
}
