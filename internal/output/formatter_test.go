package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
}

var rowColumns = []Column{
	{Name: "ID", Key: "ID"},
	{Name: "Name", Key: "Name"},
}

func TestPlainPrintResult(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("plain", &out, &errOut)

	require.NoError(t, f.PrintResult(Result{Tool: "ts", Input: "12345", Output: "1970-01-01 03:25:45", Warning: "non-standard length"}))
	assert.Equal(t, "1970-01-01 03:25:45\n", out.String())
	assert.Equal(t, "warning: non-standard length\n", errOut.String())

	t.Run("trailing newline is not doubled", func(t *testing.T) {
		var out bytes.Buffer
		f := NewWithWriters("plain", &out, &bytes.Buffer{})
		require.NoError(t, f.PrintResult(Result{Output: "a\nb\n"}))
		assert.Equal(t, "a\nb\n", out.String())
	})

	t.Run("empty output prints nothing", func(t *testing.T) {
		var out bytes.Buffer
		f := NewWithWriters("plain", &out, &bytes.Buffer{})
		require.NoError(t, f.PrintResult(Result{}))
		assert.Empty(t, out.String())
	})
}

func TestPlainPrintList(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("plain", &out, &bytes.Buffer{})

	require.NoError(t, f.PrintList([]row{{ID: "ts", Name: "Timestamp"}, {ID: "json", Name: "JSON"}}, rowColumns))
	assert.Equal(t, "ID\tName\nts\tTimestamp\njson\tJSON\n", out.String())

	t.Run("maps", func(t *testing.T) {
		var out bytes.Buffer
		f := NewWithWriters("plain", &out, &bytes.Buffer{})
		items := []map[string]string{{"ID": "url", "Name": "URL"}}
		require.NoError(t, f.PrintList(items, rowColumns))
		assert.Equal(t, "ID\tName\nurl\tURL\n", out.String())
	})

	t.Run("not a slice", func(t *testing.T) {
		f := NewWithWriters("plain", &bytes.Buffer{}, &bytes.Buffer{})
		assert.Error(t, f.PrintList(row{}, rowColumns))
	})
}

func TestJSONFormatter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("json", &out, &errOut)

	require.NoError(t, f.PrintResult(Result{Tool: "json", Input: "{}", Output: "<{}>", Structured: true}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "json", got["tool"])
	assert.Equal(t, "<{}>", got["output"])
	assert.Equal(t, true, got["structured"])
	assert.NotContains(t, got, "warning")
	assert.Contains(t, out.String(), "<{}>", "HTML is not escaped")

	t.Run("list envelope", func(t *testing.T) {
		var out bytes.Buffer
		f := NewWithWriters("json", &out, &bytes.Buffer{})
		require.NoError(t, f.PrintList([]row{{ID: "ts"}}, rowColumns))

		var env struct {
			Data  []row `json:"data"`
			Count int   `json:"count"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &env))
		assert.Equal(t, 1, env.Count)
		assert.Equal(t, "ts", env.Data[0].ID)
	})

	t.Run("errors and hints", func(t *testing.T) {
		var errOut bytes.Buffer
		f := NewWithWriters("json", &bytes.Buffer{}, &errOut)
		f.PrintError(NewCLIError(ExitParse, "bad input"))
		f.PrintHint("ignored")
		assert.JSONEq(t, `{"error":"bad input"}`, errOut.String())
	})
}

func TestRichPrintResultHighlight(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("rich", &out, &bytes.Buffer{})

	err := f.PrintResult(Result{
		Output:    "panic\n\tat main.go:12\n",
		Highlight: func(line string) bool { return strings.Contains(line, ".go:") },
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "panic", lines[0])
	assert.Contains(t, lines[1], "main.go:12")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", OneLine("a\n b\t\tc "))
	assert.Equal(t, "", OneLine(""))
}
