package jsonconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{"name":"handy","tags":["a","b"],"a/b":{"~x":1.5},"ok":true,"none":null}`

func TestValueNodes(t *testing.T) {
	v, err := Parse(sampleDoc)
	require.NoError(t, err)

	nodes := v.Nodes()
	pointers := make([]string, len(nodes))
	for i, n := range nodes {
		pointers[i] = n.Pointer
	}

	assert.Equal(t, []string{
		"",
		"/name",
		"/tags",
		"/tags/0",
		"/tags/1",
		"/a~1b",
		"/a~1b/~0x",
		"/ok",
		"/none",
	}, pointers)

	assert.Equal(t, "object", nodes[0].Kind)
	assert.Equal(t, 0, nodes[0].Depth)
	assert.Equal(t, Node{Pointer: "/name", Kind: "string", Depth: 1, Text: "handy"}, nodes[1])
	assert.Equal(t, "array", nodes[2].Kind)
	assert.Equal(t, 2, nodes[3].Depth)
	assert.Equal(t, "number", nodes[6].Kind)
	assert.Equal(t, "1.5", nodes[6].Text)
	assert.Equal(t, "boolean", nodes[7].Kind)
	assert.Equal(t, "null", nodes[8].Kind)
}

func TestValueAt(t *testing.T) {
	v, err := Parse(sampleDoc)
	require.NoError(t, err)

	tests := []struct {
		pointer string
		text    string
		kind    string
	}{
		{pointer: "/name", text: "handy", kind: "string"},
		{pointer: "/tags/1", text: "b", kind: "string"},
		{pointer: "/tags", text: `["a","b"]`, kind: "array"},
		{pointer: "/a~1b/~0x", text: "1.5", kind: "number"},
		{pointer: "/ok", text: "true", kind: "boolean"},
		{pointer: "", text: sampleDoc, kind: "object"},
	}

	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			got, err := v.At(tt.pointer)
			require.NoError(t, err)
			assert.Equal(t, tt.text, got.Text())
			assert.Equal(t, tt.kind, got.Kind())
		})
	}

	missing := []string{"/nope", "/tags/2", "/tags/01", "/tags/-1", "/name/x"}
	for _, p := range missing {
		t.Run("missing "+p, func(t *testing.T) {
			_, err := v.At(p)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}

	_, err = v.At("name")
	assert.ErrorIs(t, err, ErrInvalidPointer)
}

func TestValueFromPrettyOutput(t *testing.T) {
	res, err := Process(`{"b":{"c":[10,20]},"a":1}`, Options{Format: Pretty})
	require.NoError(t, err)

	got, err := res.Value.At("/b/c/1")
	require.NoError(t, err)
	assert.Equal(t, "20", got.Raw())

	first := res.Value.Nodes()[1]
	assert.Equal(t, "/b", first.Pointer)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse(`{"a":}`)
	assert.Error(t, err)
}
