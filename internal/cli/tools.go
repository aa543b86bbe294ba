package cli

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/lineformat"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/tools"
)

// ToolsListCmd lists the converters in display order
type ToolsListCmd struct{}

// Run executes the list command
func (cmd *ToolsListCmd) Run(fp *FormatterProvider, cfg *config.Config, store state.Store, engine *timestamp.Engine) error {
	snap, err := store.Load()
	if err != nil {
		return output.Errorf(output.ExitStateError, "state: %v", err)
	}
	seedSnapshot(snap, cfg, engine, time.Now())

	type toolItem struct {
		ID          string
		Name        string
		Description string
		Active      string
	}

	reg := tools.FromSnapshot(snap, engine)
	active := reg.Active().ID()

	var items []toolItem
	for _, t := range reg.All() {
		marker := ""
		if t.ID() == active {
			marker = "*"
		}
		items = append(items, toolItem{
			ID:          t.ID(),
			Name:        t.Name(),
			Description: t.Description(),
			Active:      marker,
		})
	}

	cols := []output.Column{
		{Name: "ID", Key: "ID"},
		{Name: "Name", Key: "Name"},
		{Name: "Description", Key: "Description", Width: 60},
		{Name: "Active", Key: "Active"},
	}
	return fp.Formatter.PrintList(items, cols)
}

// ToolsRunCmd runs a converter by ID using its remembered options
type ToolsRunCmd struct {
	ID    string `arg:"" help:"Converter ID (ts, json, url, lines)" predictor:"tool"`
	Input string `arg:"" optional:"" help:"Input text; '-' reads stdin"`
}

// Run executes the run command
func (cmd *ToolsRunCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config, logger *zerolog.Logger, store state.Store, engine *timestamp.Engine) error {
	input, ok, err := readInput(cmd.Input)
	if err != nil {
		return err
	}

	id := cmd.ID

	// Without input the timestamp converter shows its remembered conversion
	if !ok && id != "ts" {
		return errNoInput
	}

	run := toolRun{store: store, engine: engine, cfg: cfg, logger: logger}
	outcome, snap, err := run.apply(id, func(snap *state.Snapshot) (string, error) {
		if !ok {
			return snap.Timestamp.Input, nil
		}
		return input, nil
	})
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return toolError(outcome.Err)
	}

	res := output.Result{
		Tool:    id,
		Input:   input,
		Output:  outcome.Output,
		Warning: outcome.Warning,
	}
	switch id {
	case "ts":
		res.Input = snap.Timestamp.Input
	case "json":
		res.Structured = snap.JSON.Structured
	case "lines":
		res.Highlight = lineformat.IsCodeLine
	}
	return emit(fp, globals, res)
}
