// Package timestamp converts between Unix timestamps and local datetime strings.
//
// Input is classified in a fixed order: integer timestamps split at the tenth
// character into whole seconds and sub-second digits, then datetime strings in
// the display format, then short integer second counts. Output precision follows
// the selected Unit.
package timestamp

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Errors reported by Convert. ErrNonStandardLength is only ever an advisory.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNonStandardLength = errors.New("non-standard timestamp length (expected 10/13/16/19 digits for s/ms/us/ns)")
	ErrTimeResolution    = errors.New("time resolution failed")
	ErrOutOfRange        = errors.New("timestamp out of range")
)

// secondsWidth is the digit count of a whole-second timestamp
const secondsWidth = 10

// parseLayout accepts an optional fraction of up to nine digits after the seconds
const parseLayout = LayoutSeconds

// Kind tells which interpretation of the input was used
type Kind int

const (
	KindEmpty Kind = iota
	KindInvalid
	KindTimestamp
	KindDateTime
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindTimestamp:
		return "timestamp"
	case KindDateTime:
		return "datetime"
	default:
		return "invalid"
	}
}

// Result is the outcome of a conversion
type Result struct {
	Output   string
	Kind     Kind
	Advisory error
}

// Engine converts timestamps in a fixed location. It keeps no state between calls.
type Engine struct {
	loc *time.Location
}

// NewEngine creates an engine rendering and resolving wall clocks in loc.
// A nil location means time.Local.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{loc: loc}
}

// Location returns the engine's location
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Format renders t in the engine's location at the precision of unit
func (e *Engine) Format(t time.Time, unit Unit) string {
	return t.In(e.loc).Format(unit.Layout())
}

// Convert interprets input as a timestamp or datetime string and converts it.
// Timestamps become datetime strings at the unit's precision; datetime strings
// become integer timestamps in the unit.
func (e *Engine) Convert(input string, unit Unit) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{Kind: KindEmpty}, nil
	}

	var res Result
	if len(input) > secondsWidth {
		head, tail := input[:secondsWidth], input[secondsWidth:]
		secs, err := strconv.ParseInt(head, 10, 64)
		if err == nil && isFraction(tail) {
			res = Result{Output: e.Format(time.Unix(secs, scaleFraction(tail)), unit), Kind: KindTimestamp}
		} else {
			wall, err := time.Parse(parseLayout, input)
			if err != nil {
				return Result{Kind: KindInvalid}, ErrInvalidInput
			}
			t, err := ResolveLocal(wall, e.loc)
			if err != nil {
				return Result{Kind: KindDateTime}, err
			}
			n, err := ToUnit(t, unit)
			if err != nil {
				return Result{Kind: KindDateTime}, err
			}
			res = Result{Output: strconv.FormatInt(n, 10), Kind: KindDateTime}
		}
	} else {
		secs, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return Result{Kind: KindInvalid}, ErrInvalidInput
		}
		res = Result{Output: e.Format(time.Unix(secs, 0), Seconds), Kind: KindTimestamp}
	}

	if res.Kind == KindTimestamp && !isStandardWidth(len(input)) {
		res.Advisory = ErrNonStandardLength
	}
	return res, nil
}

// ToUnit returns the integer count of units since the Unix epoch, truncated
// toward zero
func ToUnit(t time.Time, unit Unit) (int64, error) {
	scale := unit.Scale()
	perSecond := int64(time.Second) / scale
	secs, nsec := t.Unix(), int64(t.Nanosecond())

	if secs > math.MaxInt64/perSecond || secs < math.MinInt64/perSecond {
		return 0, ErrOutOfRange
	}
	n := secs*perSecond + nsec/scale
	if secs > 0 && n < 0 {
		return 0, ErrOutOfRange
	}
	// nsec/scale floors; negative instants with a remainder truncate up
	if secs < 0 && nsec%scale != 0 {
		n++
	}
	return n, nil
}

func isFraction(s string) bool {
	if len(s) == 0 || len(s) > 9 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// scaleFraction turns sub-second digits into nanoseconds ("123" -> 123000000)
func scaleFraction(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	for i := len(s); i < 9; i++ {
		n *= 10
	}
	return n
}

func isStandardWidth(n int) bool {
	switch n {
	case 10, 13, 16, 19:
		return true
	default:
		return false
	}
}
