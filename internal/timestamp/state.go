package timestamp

import (
	"errors"
	"strconv"
	"time"
)

// State is the converter state a front end keeps between edits
type State struct {
	Input     string `toml:"input" json:"input"`
	Converted string `toml:"converted" json:"converted"`
	Warning   string `toml:"warning,omitempty" json:"warning,omitempty"`
	Unit      Unit   `toml:"unit" json:"unit"`
}

// NewState seeds a state with now, as a millisecond timestamp and its rendering,
// so a fresh converter shows a live example. unit is the selected output unit.
func NewState(e *Engine, now time.Time, unit Unit) *State {
	return &State{
		Input:     strconv.FormatInt(now.UnixMilli(), 10),
		Converted: e.Format(now, Milliseconds),
		Unit:      unit,
	}
}

// Update converts the current input with the selected unit.
//
// Invalid input clears the output. Resolution failures leave the previous output
// in place. Advisories keep the new output and set the warning. The returned
// error is the hard failure, if any.
func (s *State) Update(e *Engine) error {
	res, err := e.Convert(s.Input, s.Unit)
	switch {
	case err == nil:
		s.Converted = res.Output
		s.Warning = ""
		if res.Advisory != nil {
			s.Warning = res.Advisory.Error()
		}
		return nil
	case errors.Is(err, ErrInvalidInput):
		s.Converted = ""
		s.Warning = err.Error()
	default:
		s.Warning = err.Error()
	}
	return err
}
