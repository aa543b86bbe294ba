package cli

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/semmy-space/handy/internal/config"
	"github.com/semmy-space/handy/internal/jsonconv"
	"github.com/semmy-space/handy/internal/output"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
)

// JSONCmd runs the JSON pipeline
type JSONCmd struct {
	Input      string `arg:"" optional:"" help:"JSON text; '-' reads stdin"`
	Conversion string `help:"String literal conversion: none, serialize or deserialize" enum:"none,serialize,deserialize," default:"" predictor:"conversion"`
	Format     string `help:"Structural format: none, pretty or minimize" short:"f" enum:"none,pretty,minimize," default:"" predictor:"format"`
	Pythonic   bool   `help:"Treat single quotes and None as JSON" xor:"pythonic"`
	NoPythonic bool   `help:"Turn remembered pythonic mode off" name:"no-pythonic" xor:"pythonic"`
	Paths      bool   `help:"List every value with its JSON pointer (needs pretty output)"`
	At         string `help:"Print the value at a JSON pointer such as /items/0/name" placeholder:"POINTER"`
	Last       bool   `help:"Reprocess the remembered input with the given options"`
}

// Run executes the json command
func (cmd *JSONCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config, logger *zerolog.Logger, store state.Store, engine *timestamp.Engine) error {
	input, ok, err := readInput(cmd.Input)
	if err != nil {
		return err
	}
	if !ok && !cmd.Last {
		return errNoInput
	}

	run := toolRun{store: store, engine: engine, cfg: cfg, logger: logger}
	outcome, snap, err := run.apply("json", func(snap *state.Snapshot) (string, error) {
		if err := cmd.applyOptions(&snap.JSON.Options); err != nil {
			return "", err
		}
		if ok {
			return input, nil
		}
		return snap.JSON.Input, nil
	})
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return toolError(outcome.Err)
	}

	switch {
	case cmd.At != "":
		return cmd.printAt(fp, globals, snap.JSON)
	case cmd.Paths:
		return cmd.printPaths(fp, snap.JSON)
	}

	return emit(fp, globals, output.Result{
		Tool:       "json",
		Input:      snap.JSON.Input,
		Output:     outcome.Output,
		Structured: snap.JSON.Structured,
	})
}

// applyOptions overrides remembered options with the flags that were given
func (cmd *JSONCmd) applyOptions(opts *jsonconv.Options) error {
	if cmd.Conversion != "" {
		c, err := jsonconv.ParseConversion(cmd.Conversion)
		if err != nil {
			return output.NewCLIError(output.ExitUsage, err.Error())
		}
		opts.Conversion = c
	}
	if cmd.Format != "" {
		f, err := jsonconv.ParseFormat(cmd.Format)
		if err != nil {
			return output.NewCLIError(output.ExitUsage, err.Error())
		}
		opts.Format = f
	}
	switch {
	case cmd.Pythonic:
		opts.Pythonic = true
	case cmd.NoPythonic:
		opts.Pythonic = false
	}
	return nil
}

func (cmd *JSONCmd) document(st *jsonconv.State) (*jsonconv.Value, error) {
	v := st.Value()
	if v == nil {
		return nil, output.NewCLIError(output.ExitUsage, "output is not a structured document").
			WithHint("Use --format pretty without --conversion serialize")
	}
	return v, nil
}

func (cmd *JSONCmd) printAt(fp *FormatterProvider, globals *Globals, st *jsonconv.State) error {
	doc, err := cmd.document(st)
	if err != nil {
		return err
	}

	v, err := doc.At(cmd.At)
	switch {
	case errors.Is(err, jsonconv.ErrInvalidPointer):
		return output.NewCLIError(output.ExitUsage, err.Error()).
			WithHint("JSON pointers start with '/', for example /items/0")
	case errors.Is(err, jsonconv.ErrNotFound):
		return output.NewCLIError(output.ExitInvalidInput, err.Error())
	case err != nil:
		return err
	}

	return emit(fp, globals, output.Result{
		Tool:       "json",
		Input:      cmd.At,
		Output:     v.Text(),
		Structured: v.Kind() == "object" || v.Kind() == "array",
	})
}

func (cmd *JSONCmd) printPaths(fp *FormatterProvider, st *jsonconv.State) error {
	doc, err := cmd.document(st)
	if err != nil {
		return err
	}

	type pathItem struct {
		Pointer string
		Kind    string
		Value   string
	}

	nodes := doc.Nodes()
	items := make([]pathItem, len(nodes))
	for i, n := range nodes {
		ptr := n.Pointer
		if ptr == "" {
			ptr = "(root)"
		}
		value := ""
		if n.Kind != "object" && n.Kind != "array" {
			value = output.OneLine(n.Text)
		}
		items[i] = pathItem{Pointer: ptr, Kind: n.Kind, Value: value}
	}

	cols := []output.Column{
		{Name: "Pointer", Key: "Pointer"},
		{Name: "Kind", Key: "Kind"},
		{Name: "Value", Key: "Value", Width: 60},
	}
	return fp.Formatter.PrintList(items, cols)
}
