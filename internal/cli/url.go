package cli

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/urlcodec"
	"github.com/semmy-space/handy/pkg/browser"
)

// URLCmd percent-encodes or decodes text
type URLCmd struct {
	Input string `arg:"" optional:"" help:"Text to convert; '-' reads stdin"`
	Mode  string `help:"Direction: decode or encode" short:"m" enum:"decode,encode," default:"" predictor:"mode"`
	Open  bool   `help:"Open the decoded URL in the default browser"`
}

// Run executes the url command
func (cmd *URLCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config, logger *zerolog.Logger, store state.Store, engine *timestamp.Engine) error {
	input, ok, err := readInput(cmd.Input)
	if err != nil {
		return err
	}
	if !ok {
		return errNoInput
	}

	run := toolRun{store: store, engine: engine, cfg: cfg, logger: logger}
	outcome, snap, err := run.apply("url", func(snap *state.Snapshot) (string, error) {
		if cmd.Mode != "" {
			mode, err := urlcodec.ParseMode(cmd.Mode)
			if err != nil {
				return "", output.NewCLIError(output.ExitUsage, err.Error())
			}
			snap.URL.Mode = mode
		}
		return input, nil
	})
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return toolError(outcome.Err)
	}

	if err := emit(fp, globals, output.Result{
		Tool:   "url",
		Input:  input,
		Output: outcome.Output,
	}); err != nil {
		return err
	}

	if cmd.Open {
		target := openTarget(snap.URL)
		if !isWebURL(target) {
			return output.Errorf(output.ExitUsage, "not a web URL: %s", target).
				WithHint("Only http and https URLs can be opened")
		}
		logger.Debug().Str("url", target).Msg("opening browser")
		if err := browser.Open(target); err != nil {
			return output.Errorf(output.ExitGeneral, "failed to open browser: %v", err)
		}
	}
	return nil
}

// openTarget is the readable form of the conversion, which is the input when encoding
func openTarget(st *urlcodec.State) string {
	if st.Mode == urlcodec.Encode {
		return st.Input
	}
	return st.Converted
}

func isWebURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
