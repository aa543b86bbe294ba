package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zerolog.Level
	}{
		{name: "empty defaults to warn", input: "", expected: zerolog.WarnLevel},
		{name: "debug", input: "debug", expected: zerolog.DebugLevel},
		{name: "upper case", input: "INFO", expected: zerolog.InfoLevel},
		{name: "unknown defaults to warn", input: "chatty", expected: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: FormatJSON})

	logger.Debug().Msg("hidden")
	logger.Info().Str("tool", "ts").Msg("converted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["message"])
	assert.Equal(t, "ts", entry["tool"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewVerboseConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "error", Verbose: true, NoColor: true})

	logger.Debug().Msg("state loaded")
	assert.Contains(t, buf.String(), "state loaded")
	assert.Contains(t, buf.String(), "DBG")
}
