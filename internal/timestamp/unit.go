package timestamp

import "fmt"

// Unit selects the display precision and the scale of integer timestamps
type Unit int

const (
	Seconds Unit = iota
	Milliseconds
	Microseconds
	Nanoseconds
)

// Display layouts per unit
const (
	LayoutSeconds      = "2006-01-02 15:04:05"
	LayoutMilliseconds = "2006-01-02 15:04:05.000"
	LayoutMicroseconds = "2006-01-02 15:04:05.000000"
	LayoutNanoseconds  = "2006-01-02 15:04:05.000000000"
)

// Units lists every unit in display order
var Units = []Unit{Seconds, Milliseconds, Microseconds, Nanoseconds}

// ParseUnit maps a short unit name (s, ms, us, ns) to a Unit
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "milli", "milliseconds":
		return Milliseconds, nil
	case "us", "micro", "microseconds":
		return Microseconds, nil
	case "ns", "nano", "nanoseconds":
		return Nanoseconds, nil
	default:
		return Seconds, fmt.Errorf("unknown time unit: %q", s)
	}
}

// String returns the short unit name
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Layout returns the display layout for the unit
func (u Unit) Layout() string {
	switch u {
	case Milliseconds:
		return LayoutMilliseconds
	case Microseconds:
		return LayoutMicroseconds
	case Nanoseconds:
		return LayoutNanoseconds
	default:
		return LayoutSeconds
	}
}

// Scale returns the number of nanoseconds in one unit
func (u Unit) Scale() int64 {
	switch u {
	case Milliseconds:
		return 1_000_000
	case Microseconds:
		return 1_000
	case Nanoseconds:
		return 1
	default:
		return 1_000_000_000
	}
}

// MarshalText implements encoding.TextMarshaler
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
