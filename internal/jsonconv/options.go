package jsonconv

import "fmt"

// Conversion selects string-literal escaping before formatting
type Conversion int

const (
	ConversionNone Conversion = iota
	Serialize
	Deserialize
)

// Format selects structural re-serialization
type Format int

const (
	FormatNone Format = iota
	Pretty
	Minimize
)

// Options configures one run of Process
type Options struct {
	Conversion Conversion `toml:"conversion" json:"conversion"`
	Format     Format     `toml:"format" json:"format"`
	Pythonic   bool       `toml:"pythonic" json:"pythonic"`
}

// Normalized returns o with the option coupling applied: a serialized string
// literal is never structurally formatted.
func (o Options) Normalized() Options {
	if o.Conversion == Serialize {
		o.Format = FormatNone
	}
	return o
}

// ParseConversion maps none, serialize or deserialize to a Conversion
func ParseConversion(s string) (Conversion, error) {
	switch s {
	case "", "none":
		return ConversionNone, nil
	case "serialize", "escape":
		return Serialize, nil
	case "deserialize", "unescape":
		return Deserialize, nil
	default:
		return ConversionNone, fmt.Errorf("unknown conversion: %q", s)
	}
}

func (c Conversion) String() string {
	switch c {
	case Serialize:
		return "serialize"
	case Deserialize:
		return "deserialize"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Conversion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Conversion) UnmarshalText(text []byte) error {
	parsed, err := ParseConversion(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseFormat maps none, pretty or minimize to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "none":
		return FormatNone, nil
	case "pretty":
		return Pretty, nil
	case "minimize", "minify":
		return Minimize, nil
	default:
		return FormatNone, fmt.Errorf("unknown format: %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case Pretty:
		return "pretty"
	case Minimize:
		return "minimize"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
