package timestamp

import (
	"strconv"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestConvertTimestamps(t *testing.T) {
	e := NewEngine(time.UTC)

	tests := []struct {
		name     string
		input    string
		unit     Unit
		expected string
		advisory bool
	}{
		{name: "seconds", input: "1700000000", unit: Seconds, expected: "2023-11-14 22:13:20"},
		{name: "milliseconds", input: "1700000000123", unit: Milliseconds, expected: "2023-11-14 22:13:20.123"},
		{name: "microseconds", input: "1700000000123456", unit: Microseconds, expected: "2023-11-14 22:13:20.123456"},
		{name: "nanoseconds", input: "1700000000123456789", unit: Nanoseconds, expected: "2023-11-14 22:13:20.123456789"},
		{name: "millis shown as seconds", input: "1700000000123", unit: Seconds, expected: "2023-11-14 22:13:20"},
		{name: "millis shown as nanos", input: "1700000000123", unit: Nanoseconds, expected: "2023-11-14 22:13:20.123000000"},
		{name: "surrounding whitespace", input: "  1700000000\n", unit: Seconds, expected: "2023-11-14 22:13:20"},
		{name: "eleven digits", input: "17000000001", unit: Milliseconds, expected: "2023-11-14 22:13:20.100", advisory: true},
		{name: "short integer", input: "12345", unit: Seconds, expected: "1970-01-01 03:25:45", advisory: true},
		{name: "short integer ignores unit", input: "12345", unit: Nanoseconds, expected: "1970-01-01 03:25:45", advisory: true},
		{name: "negative", input: "-1", unit: Seconds, expected: "1969-12-31 23:59:59", advisory: true},
		{name: "zero", input: "0", unit: Seconds, expected: "1970-01-01 00:00:00", advisory: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Convert(tt.input, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, KindTimestamp, res.Kind)
			assert.Equal(t, tt.expected, res.Output)
			if tt.advisory {
				assert.ErrorIs(t, res.Advisory, ErrNonStandardLength)
			} else {
				assert.NoError(t, res.Advisory)
			}
		})
	}
}

func TestConvertDateTimes(t *testing.T) {
	e := NewEngine(time.UTC)

	tests := []struct {
		name     string
		input    string
		unit     Unit
		expected string
	}{
		{name: "to seconds", input: "2023-11-14 22:13:20.123", unit: Seconds, expected: "1700000000"},
		{name: "to milliseconds", input: "2023-11-14 22:13:20.123", unit: Milliseconds, expected: "1700000000123"},
		{name: "to microseconds", input: "2023-11-14 22:13:20.123", unit: Microseconds, expected: "1700000000123000"},
		{name: "to nanoseconds", input: "2023-11-14 22:13:20.123", unit: Nanoseconds, expected: "1700000000123000000"},
		{name: "without fraction", input: "2023-11-14 22:13:20", unit: Seconds, expected: "1700000000"},
		{name: "nanosecond fraction", input: "2023-11-14 22:13:20.123456789", unit: Nanoseconds, expected: "1700000000123456789"},
		{name: "before epoch truncates toward zero", input: "1969-12-31 23:59:59.500", unit: Seconds, expected: "0"},
		{name: "before epoch in millis", input: "1969-12-31 23:59:59.500", unit: Milliseconds, expected: "-500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Convert(tt.input, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, KindDateTime, res.Kind)
			assert.Equal(t, tt.expected, res.Output)
			assert.NoError(t, res.Advisory)
		})
	}
}

func TestConvertEmptyAndInvalid(t *testing.T) {
	e := NewEngine(time.UTC)

	for _, unit := range Units {
		res, err := e.Convert("", unit)
		require.NoError(t, err)
		assert.Equal(t, KindEmpty, res.Kind)
		assert.Empty(t, res.Output)
		assert.NoError(t, res.Advisory)
	}

	invalid := []string{
		"abc",
		"2023-13-01 00:00:00.000",
		"17000000001234567890",
		"1700000000abc",
		"2023-11-14T22:13:20",
		"+",
	}
	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			res, err := e.Convert(input, Seconds)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, KindInvalid, res.Kind)
			assert.Empty(t, res.Output)
		})
	}
}

func TestConvertOutOfRange(t *testing.T) {
	e := NewEngine(time.UTC)

	_, err := e.Convert("9999-12-31 23:59:59.000", Nanoseconds)
	assert.ErrorIs(t, err, ErrOutOfRange)

	res, err := e.Convert("9999-12-31 23:59:59.000", Seconds)
	require.NoError(t, err)
	assert.Equal(t, "253402300799", res.Output)
}

func TestConvertUsesLocation(t *testing.T) {
	e := NewEngine(mustLoad(t, "Asia/Shanghai"))

	res, err := e.Convert("1700000000", Seconds)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-15 06:13:20", res.Output)

	res, err = e.Convert("2023-11-15 06:13:20.000", Seconds)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", res.Output)
}

func TestConvertDaylightSaving(t *testing.T) {
	e := NewEngine(mustLoad(t, "America/New_York"))

	t.Run("skipped wall clock fails", func(t *testing.T) {
		res, err := e.Convert("2024-03-10 02:30:00.000", Seconds)
		assert.ErrorIs(t, err, ErrTimeResolution)
		assert.Empty(t, res.Output)
	})

	t.Run("repeated wall clock takes earlier instant", func(t *testing.T) {
		res, err := e.Convert("2024-11-03 01:30:00.000", Seconds)
		require.NoError(t, err)
		assert.Equal(t, "1730611800", res.Output)
	})
}

func TestRoundTripSeconds(t *testing.T) {
	locs := []*time.Location{time.UTC, mustLoad(t, "Asia/Shanghai")}
	seeds := []int64{1000000000, 1234567890, 1700000000, 2147483647, 9999999999}

	for _, loc := range locs {
		e := NewEngine(loc)
		for _, s := range seeds {
			in := strconv.FormatInt(s, 10)

			formatted, err := e.Convert(in, Seconds)
			require.NoError(t, err)
			_, err = time.ParseInLocation(LayoutSeconds, formatted.Output, loc)
			require.NoError(t, err, "formatted output must use the display layout")

			back, err := e.Convert(formatted.Output, Seconds)
			require.NoError(t, err)
			assert.Equal(t, in, back.Output, "%s in %s", in, loc)
		}
	}
}

func TestRoundTripUnits(t *testing.T) {
	e := NewEngine(time.UTC)

	tests := []struct {
		input string
		unit  Unit
	}{
		{input: "1700000000", unit: Seconds},
		{input: "1700000000123", unit: Milliseconds},
		{input: "1700000000123456", unit: Microseconds},
		{input: "1700000000123456789", unit: Nanoseconds},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			formatted, err := e.Convert(tt.input, tt.unit)
			require.NoError(t, err)

			back, err := e.Convert(formatted.Output, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.input, back.Output)
		})
	}

	t.Run("coarser unit truncates", func(t *testing.T) {
		formatted, err := e.Convert("1700000000123456789", Milliseconds)
		require.NoError(t, err)

		back, err := e.Convert(formatted.Output, Milliseconds)
		require.NoError(t, err)
		assert.Equal(t, "1700000000123", back.Output)
	})
}

func TestResolveLocal(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	t.Run("ordinary wall clock", func(t *testing.T) {
		wall := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		got, err := ResolveLocal(wall, ny)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC), got.UTC())
		assert.Equal(t, ny, got.Location())
	})

	t.Run("gap", func(t *testing.T) {
		wall := time.Date(2024, 3, 10, 2, 30, 0, 0, time.UTC)
		_, err := ResolveLocal(wall, ny)
		assert.ErrorIs(t, err, ErrTimeResolution)
	})

	t.Run("overlap prefers earlier", func(t *testing.T) {
		wall := time.Date(2024, 11, 3, 1, 30, 0, 0, time.UTC)
		got, err := ResolveLocal(wall, ny)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC), got.UTC())
		name, _ := got.Zone()
		assert.Equal(t, "EDT", name)
	})

	t.Run("nil location is local", func(t *testing.T) {
		wall := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		got, err := ResolveLocal(wall, nil)
		require.NoError(t, err)
		assert.Equal(t, time.Local, got.Location())
	})
}

func TestToUnit(t *testing.T) {
	ts := time.Unix(-2, 500_000_000)

	tests := []struct {
		unit     Unit
		expected int64
	}{
		{unit: Seconds, expected: -1},
		{unit: Milliseconds, expected: -1500},
		{unit: Microseconds, expected: -1500000},
		{unit: Nanoseconds, expected: -1500000000},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			n, err := ToUnit(ts, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range Units {
		parsed, err := ParseUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, parsed)
	}

	_, err := ParseUnit("minutes")
	assert.Error(t, err)

	var u Unit
	require.NoError(t, u.UnmarshalText([]byte("us")))
	assert.Equal(t, Microseconds, u)
	text, err := Nanoseconds.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ns", string(text))
}
