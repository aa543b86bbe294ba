// Package tools is the registry of converters a front end can offer.
package tools

import (
	"fmt"

	"github.com/semmy-space/handy/internal/jsonconv"
	"github.com/semmy-space/handy/internal/lineformat"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/urlcodec"
)

// Outcome is what a tool shows after applying an input
type Outcome struct {
	Output  string `json:"output"`
	Warning string `json:"warning,omitempty"`
	// Err is the hard failure behind Warning, if any
	Err error `json:"-"`
}

// Tool is one converter. Tools wrap state owned by the caller and update it in place.
type Tool interface {
	ID() string
	Name() string
	Description() string
	Apply(input string) Outcome
}

// Registry holds tools in display order and remembers the active one
type Registry struct {
	tools  []Tool
	active int
}

// NewRegistry creates a registry over tools; the first tool is active
func NewRegistry(tools ...Tool) *Registry {
	return &Registry{tools: tools}
}

// FromSnapshot builds the standard registry over the tool states in snap, which
// must be seeded. The snapshot's active tool is selected when it names one.
func FromSnapshot(snap *state.Snapshot, engine *timestamp.Engine) *Registry {
	r := NewRegistry(
		&TimestampTool{State: snap.Timestamp, Engine: engine},
		&JSONTool{State: snap.JSON},
		&URLTool{State: snap.URL},
		&LinesTool{State: snap.Lines},
	)
	if snap.Active != "" {
		_ = r.Select(snap.Active)
	}
	return r
}

// All returns the tools in display order
func (r *Registry) All() []Tool {
	return r.tools
}

// Lookup finds a tool by ID
func (r *Registry) Lookup(id string) (Tool, bool) {
	for _, t := range r.tools {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// Select makes the tool with the given ID active
func (r *Registry) Select(id string) error {
	for i, t := range r.tools {
		if t.ID() == id {
			r.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown tool: %s", id)
}

// Active returns the active tool, or nil for an empty registry
func (r *Registry) Active() Tool {
	if len(r.tools) == 0 {
		return nil
	}
	return r.tools[r.active]
}

// TimestampTool adapts timestamp.State
type TimestampTool struct {
	State  *timestamp.State
	Engine *timestamp.Engine
}

func (t *TimestampTool) ID() string   { return "ts" }
func (t *TimestampTool) Name() string { return "Timestamp" }
func (t *TimestampTool) Description() string {
	return "Convert Unix timestamps to readable datetimes and back"
}

func (t *TimestampTool) Apply(input string) Outcome {
	t.State.Input = input
	err := t.State.Update(t.Engine)
	return Outcome{Output: t.State.Converted, Warning: t.State.Warning, Err: err}
}

// JSONTool adapts jsonconv.State
type JSONTool struct {
	State *jsonconv.State
}

func (t *JSONTool) ID() string   { return "json" }
func (t *JSONTool) Name() string { return "JSON" }
func (t *JSONTool) Description() string {
	return "Escape, unescape, pretty-print or minimize JSON"
}

func (t *JSONTool) Apply(input string) Outcome {
	t.State.Input = input
	err := t.State.Update()
	return Outcome{Output: t.State.Converted, Warning: t.State.Warning, Err: err}
}

// URLTool adapts urlcodec.State
type URLTool struct {
	State *urlcodec.State
}

func (t *URLTool) ID() string          { return "url" }
func (t *URLTool) Name() string        { return "URL" }
func (t *URLTool) Description() string { return "Percent-encode or decode URLs" }

func (t *URLTool) Apply(input string) Outcome {
	t.State.Input = input
	err := t.State.Update()
	return Outcome{Output: t.State.Converted, Warning: t.State.Warning, Err: err}
}

// LinesTool adapts lineformat.State
type LinesTool struct {
	State *lineformat.State
}

func (t *LinesTool) ID() string   { return "lines" }
func (t *LinesTool) Name() string { return "Stack trace lines" }
func (t *LinesTool) Description() string {
	return "Split escaped stack traces into lines and mark code locations"
}

func (t *LinesTool) Apply(input string) Outcome {
	t.State.Input = input
	t.State.Update()
	return Outcome{Output: t.State.Converted}
}
