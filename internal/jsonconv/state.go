package jsonconv

// State is the converter state a front end keeps between edits
type State struct {
	Input      string  `toml:"input" json:"input"`
	Converted  string  `toml:"converted" json:"converted"`
	Structured bool    `toml:"structured" json:"structured"`
	Warning    string  `toml:"warning,omitempty" json:"warning,omitempty"`
	Options    Options `toml:"options" json:"options"`

	value *Value
}

// NewState returns an empty state that pretty-prints by default
func NewState() *State {
	return &State{Options: Options{Format: Pretty}}
}

// Update runs the pipeline on the current input with the normalized options.
// On success the output is replaced and the warning cleared. On failure the
// previous output is kept so it can still be copied, and the warning is set.
func (s *State) Update() error {
	s.Options = s.Options.Normalized()

	res, err := Process(s.Input, s.Options)
	if err != nil {
		s.Warning = err.Error()
		return err
	}

	s.Converted = res.Text
	s.Structured = res.Structured
	s.value = res.Value
	s.Warning = ""
	return nil
}

// Value returns the parsed document behind a structured output, or nil. A state
// restored from disk reparses its output on first use.
func (s *State) Value() *Value {
	if !s.Structured {
		return nil
	}
	if s.value == nil {
		v, err := Parse(s.Converted)
		if err != nil {
			return nil
		}
		s.value = v
	}
	return s.value
}
