// Package jsonconv escapes, unescapes, pretty-prints and minimizes JSON text.
//
// Process runs a three stage pipeline: an optional pythonic pre-normalization,
// an optional string-literal conversion and an optional structural format.
// Each stage runs only if the previous one produced usable text. Parser
// diagnostics are returned verbatim so a front end can show them as-is.
package jsonconv

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/pretty"
)

// Stages named in ParseError
const (
	StageDeserialize = "deserialize"
	StageFormat      = "format"
)

// prettyOptions keeps insertion order and always breaks arrays onto lines
var prettyOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// errNullLiteral matches the decoder's wording for a null where a string is required
var errNullLiteral = errors.New("json: cannot unmarshal null into Go value of type string")

// ParseError carries the JSON parser's diagnostic for the stage that failed.
// Error returns the parser's message unchanged.
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result is the output of a successful run
type Result struct {
	Text string
	// Structured is set when Text is a pretty-printed document suitable for a tree view
	Structured bool
	// Value is the parsed document when Structured is set
	Value *Value
}

// Process runs the pipeline on input. It never panics on malformed input; every
// failure is a *ParseError.
func Process(input string, opts Options) (Result, error) {
	text := input
	if opts.Pythonic {
		text = Depythonize(text)
	}

	switch opts.Conversion {
	case Deserialize:
		unescaped, err := Unescape(text)
		if err != nil {
			return Result{}, &ParseError{Stage: StageDeserialize, Err: err}
		}
		text = unescaped
	case Serialize:
		text = Escape(text)
	}

	switch opts.Format {
	case Pretty:
		data := []byte(text)
		if err := validate(data); err != nil {
			return Result{}, &ParseError{Stage: StageFormat, Err: err}
		}
		out := bytes.TrimSuffix(pretty.PrettyOptions(data, prettyOptions), []byte("\n"))
		v := newValue(out)
		if !v.res.IsObject() && !v.res.IsArray() {
			// A bare scalar has no tree to walk
			return Result{Text: string(out)}, nil
		}
		return Result{Text: string(out), Structured: true, Value: v}, nil
	case Minimize:
		data := []byte(text)
		if err := validate(data); err != nil {
			return Result{}, &ParseError{Stage: StageFormat, Err: err}
		}
		return Result{Text: string(pretty.Ugly(data))}, nil
	default:
		return Result{Text: text}, nil
	}
}

// Depythonize rewrites a Python dict literal into JSON by blind substitution:
// every ' becomes " and every None becomes null. Apostrophes inside string
// values are rewritten too.
func Depythonize(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	return strings.ReplaceAll(s, "None", "null")
}

// Escape renders s as a JSON string literal, quotes included. HTML characters
// are left as-is.
func Escape(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Unescape parses s as a single JSON string literal and returns its content.
// A null literal is rejected.
func Unescape(s string) (string, error) {
	var out *string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return "", err
	}
	if out == nil {
		return "", errNullLiteral
	}
	return *out, nil
}

// validate reports the syntax error of data, if any
func validate(data []byte) error {
	var raw json.RawMessage
	return json.Unmarshal(data, &raw)
}
