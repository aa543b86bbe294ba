package timestamp

import "time"

// probeWindow bounds the search for UTC offsets around a wall clock. Zone
// offsets stay within ±14h, so two probes a day apart see both sides of any
// single transition.
const probeWindow = 24 * time.Hour

// ResolveLocal finds the instant whose wall clock in loc equals the civil fields
// of wall (read as UTC). When a clock-back transition makes the wall clock occur
// twice, the earlier instant wins. When a clock-forward transition skips it,
// ErrTimeResolution is returned.
func ResolveLocal(wall time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	wall = wall.UTC()

	var (
		best  time.Time
		found bool
		seen  = make(map[int]bool, 3)
	)
	for _, probe := range []time.Time{wall.Add(-probeWindow), wall, wall.Add(probeWindow)} {
		_, offset := probe.In(loc).Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true

		candidate := wall.Add(-time.Duration(offset) * time.Second)
		if _, actual := candidate.In(loc).Zone(); actual != offset {
			continue
		}
		if !found || candidate.Before(best) {
			best, found = candidate, true
		}
	}

	if !found {
		return time.Time{}, ErrTimeResolution
	}
	return best.In(loc), nil
}
