package jsonconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidPointer = errors.New("invalid JSON pointer")
	ErrNotFound       = errors.New("no value at JSON pointer")
)

// Value is a parsed JSON document. Object members keep their document order.
type Value struct {
	res gjson.Result
}

// Node is one value in a document walk
type Node struct {
	Pointer string `json:"pointer"`
	Kind    string `json:"kind"`
	Depth   int    `json:"depth"`
	// Text is the unquoted content for strings and the raw JSON otherwise
	Text string `json:"text"`
}

// Parse validates text and returns the parsed document
func Parse(text string) (*Value, error) {
	data := []byte(text)
	if err := validate(data); err != nil {
		return nil, &ParseError{Stage: StageFormat, Err: err}
	}
	return newValue(data), nil
}

func newValue(data []byte) *Value {
	return &Value{res: gjson.ParseBytes(data)}
}

// Raw returns the JSON text of the value
func (v *Value) Raw() string {
	return v.res.Raw
}

// Text returns strings unquoted and everything else as raw JSON
func (v *Value) Text() string {
	return v.res.String()
}

// Kind names the JSON type: object, array, string, number, boolean or null
func (v *Value) Kind() string {
	return kindOf(v.res)
}

// At returns the value addressed by an RFC 6901 JSON pointer. The empty pointer
// addresses the whole document.
func (v *Value) At(pointer string) (*Value, error) {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return nil, err
	}

	cur := v.res
	for _, tok := range tokens {
		next, ok := child(cur, tok)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, pointer)
		}
		cur = next
	}
	return &Value{res: cur}, nil
}

// Nodes walks the document depth first in document order
func (v *Value) Nodes() []Node {
	var nodes []Node
	walk(v.res, "", 0, &nodes)
	return nodes
}

func walk(res gjson.Result, pointer string, depth int, nodes *[]Node) {
	*nodes = append(*nodes, Node{
		Pointer: pointer,
		Kind:    kindOf(res),
		Depth:   depth,
		Text:    res.String(),
	})

	switch {
	case res.IsObject():
		res.ForEach(func(key, val gjson.Result) bool {
			walk(val, pointer+"/"+EscapeToken(key.String()), depth+1, nodes)
			return true
		})
	case res.IsArray():
		for i, val := range res.Array() {
			walk(val, pointer+"/"+strconv.Itoa(i), depth+1, nodes)
		}
	}
}

func child(res gjson.Result, tok string) (gjson.Result, bool) {
	switch {
	case res.IsObject():
		var (
			found gjson.Result
			ok    bool
		)
		res.ForEach(func(key, val gjson.Result) bool {
			if key.String() == tok {
				found, ok = val, true
				return false
			}
			return true
		})
		return found, ok
	case res.IsArray():
		if tok == "" || (len(tok) > 1 && tok[0] == '0') {
			return gjson.Result{}, false
		}
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 {
			return gjson.Result{}, false
		}
		arr := res.Array()
		if idx >= len(arr) {
			return gjson.Result{}, false
		}
		return arr[idx], true
	default:
		return gjson.Result{}, false
	}
}

func kindOf(res gjson.Result) string {
	switch res.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if res.IsArray() {
			return "array"
		}
		return "object"
	}
}

// EscapeToken escapes a member name for use in a JSON pointer
func EscapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func splitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPointer, pointer)
	}

	tokens := strings.Split(pointer[1:], "/")
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tokens[i] = strings.ReplaceAll(tok, "~0", "~")
	}
	return tokens, nil
}
