// Package lineformat restores line breaks in stack traces that were logged as
// a single escaped string, and marks the lines that point at source code.
package lineformat

import (
	"fmt"
	"regexp"
	"strings"
)

// Ending is the escaped line terminator to split on
type Ending int

const (
	LF Ending = iota
	CRLF
)

// codeLine matches file:line references such as main.go:42 or foo:12 +0x1d
var codeLine = regexp.MustCompile(`\w+:\d+( \+\w+)?`)

// ParseEnding maps lf or crlf to an Ending
func ParseEnding(s string) (Ending, error) {
	switch strings.ToLower(s) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	default:
		return LF, fmt.Errorf("unknown line ending: %q", s)
	}
}

func (e Ending) String() string {
	if e == CRLF {
		return "crlf"
	}
	return "lf"
}

// MarshalText implements encoding.TextMarshaler
func (e Ending) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Ending) UnmarshalText(text []byte) error {
	parsed, err := ParseEnding(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Ending) escaped() string {
	if e == CRLF {
		return `\r\n`
	}
	return `\n`
}

// Line is one output line
type Line struct {
	Text string `json:"text"`
	Code bool   `json:"code"`
}

// Format replaces escaped line terminators and tabs with real ones and splits
// the result into lines
func Format(input string, ending Ending) []Line {
	text := strings.ReplaceAll(input, ending.escaped(), "\n")
	text = strings.ReplaceAll(text, `\t`, "\t")
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}

	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Text: p, Code: IsCodeLine(p)}
	}
	return lines
}

// IsCodeLine reports whether line references a source location
func IsCodeLine(line string) bool {
	return codeLine.MatchString(line)
}

// Join renders lines back into newline-terminated text
func Join(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// State is the formatter state a front end keeps between edits
type State struct {
	Input     string `toml:"input" json:"input"`
	Converted string `toml:"converted" json:"converted"`
	Ending    Ending `toml:"ending" json:"ending"`

	lines []Line
}

// Update reformats the current input
func (s *State) Update() {
	s.lines = Format(s.Input, s.Ending)
	s.Converted = Join(s.lines)
}

// Lines returns the lines of the last update
func (s *State) Lines() []Line {
	if s.lines == nil && s.Input != "" {
		s.lines = Format(s.Input, s.Ending)
	}
	return s.lines
}
