// Package urlcodec percent-encodes and decodes text.
package urlcodec

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode selects the direction of a conversion
type Mode int

const (
	Decode Mode = iota
	Encode
)

// ParseMode maps encode or decode to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "decode":
		return Decode, nil
	case "encode":
		return Encode, nil
	default:
		return Decode, fmt.Errorf("unknown url mode: %q", s)
	}
}

func (m Mode) String() string {
	if m == Encode {
		return "encode"
	}
	return "decode"
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// EncodeString escapes every byte outside A-Z a-z 0-9 - . _ ~ as %XX.
// Spaces become %20.
func EncodeString(s string) string {
	// QueryEscape already escapes a literal + as %2B, so every remaining + is a space
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DecodeString reverses percent-encoding. A + is kept as-is.
func DecodeString(s string) (string, error) {
	return url.PathUnescape(s)
}

// Convert applies mode to s
func Convert(s string, mode Mode) (string, error) {
	if mode == Encode {
		return EncodeString(s), nil
	}
	return DecodeString(s)
}

// State is the converter state a front end keeps between edits
type State struct {
	Input     string `toml:"input" json:"input"`
	Converted string `toml:"converted" json:"converted"`
	Warning   string `toml:"warning,omitempty" json:"warning,omitempty"`
	Mode      Mode   `toml:"mode" json:"mode"`
}

// Update converts the current input. A failed decode keeps the previous output.
func (s *State) Update() error {
	out, err := Convert(s.Input, s.Mode)
	if err != nil {
		s.Warning = err.Error()
		return err
	}
	s.Converted = out
	s.Warning = ""
	return nil
}
