package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/handy/internal/jsonconv"
	"github.com/semmy-space/handy/internal/state"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/urlcodec"
)

func newRegistry(t *testing.T) (*Registry, *state.Snapshot) {
	t.Helper()
	engine := timestamp.NewEngine(time.UTC)
	snap := &state.Snapshot{}
	snap.Seed(engine, time.UnixMilli(1700000000123), timestamp.Milliseconds)
	return FromSnapshot(snap, engine), snap
}

func TestRegistryOrder(t *testing.T) {
	r, _ := newRegistry(t)

	var ids []string
	for _, tool := range r.All() {
		ids = append(ids, tool.ID())
		assert.NotEmpty(t, tool.Name())
		assert.NotEmpty(t, tool.Description())
	}
	assert.Equal(t, []string{"ts", "json", "url", "lines"}, ids)
	assert.Equal(t, "ts", r.Active().ID())
}

func TestRegistrySelect(t *testing.T) {
	r, _ := newRegistry(t)

	require.NoError(t, r.Select("url"))
	assert.Equal(t, "url", r.Active().ID())

	err := r.Select("issue")
	assert.Error(t, err)
	assert.Equal(t, "url", r.Active().ID(), "failed select keeps the active tool")

	_, ok := r.Lookup("lines")
	assert.True(t, ok)
	_, ok = r.Lookup("nope")
	assert.False(t, ok)
}

func TestFromSnapshotSelectsActive(t *testing.T) {
	engine := timestamp.NewEngine(time.UTC)
	snap := &state.Snapshot{Active: "json"}
	snap.Seed(engine, time.Now(), timestamp.Seconds)

	assert.Equal(t, "json", FromSnapshot(snap, engine).Active().ID())
}

func TestEmptyRegistry(t *testing.T) {
	assert.Nil(t, NewRegistry().Active())
}

func TestToolsUpdateSharedState(t *testing.T) {
	r, snap := newRegistry(t)

	ts, _ := r.Lookup("ts")
	out := ts.Apply("1700000000")
	assert.Equal(t, "2023-11-14 22:13:20", out.Output)
	assert.Equal(t, "1700000000", snap.Timestamp.Input)

	out = ts.Apply("abc")
	assert.ErrorIs(t, out.Err, timestamp.ErrInvalidInput)
	assert.Equal(t, "invalid input", out.Warning)
	assert.Empty(t, out.Output)

	js, _ := r.Lookup("json")
	out = js.Apply(`{"a":1}`)
	require.NoError(t, out.Err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out.Output)

	out = js.Apply(`{"a":1,}`)
	var perr *jsonconv.ParseError
	assert.ErrorAs(t, out.Err, &perr)
	assert.Equal(t, "{\n  \"a\": 1\n}", out.Output, "failed run keeps the last good output")
	assert.NotEmpty(t, out.Warning)

	u, _ := r.Lookup("url")
	snap.URL.Mode = urlcodec.Encode
	assert.Equal(t, "a%20b", u.Apply("a b").Output)

	lines, _ := r.Lookup("lines")
	assert.Equal(t, "a\nb\n", lines.Apply(`a\nb`).Output)
}
