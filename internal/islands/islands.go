// Package islands partitions distinct calendar dates into maximal runs of
// consecutive days (the gaps-and-islands pattern).
package islands

import (
	"fmt"
	"sort"
	"time"
)

// Island is a maximal run of consecutive days.
type Island struct {
	Start time.Time `json:"start"` // first day, UTC midnight
	End   time.Time `json:"end"`   // last day, UTC midnight
	Days  int       `json:"days"`
}

// DuplicateDateError reports a day appearing twice; the detector requires
// distinct dates, mirroring the DISTINCT the source queries applied first.
type DuplicateDateError struct {
	Date time.Time
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("duplicate date %s in island input", e.Date.Format("2006-01-02"))
}

// Detect groups the given distinct days into islands, ascending by start.
//
// It uses the constant-anchor technique: after sorting, each day minus its
// position in days is constant within a consecutive run and shifts at every
// gap, so grouping by that anchor yields exactly the maximal runs. O(n log n)
// for the sort, O(n) after.
func Detect(dates []time.Time) ([]Island, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = truncate(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	type run struct {
		first, last time.Time
		count       int
	}
	var anchors []time.Time
	runs := make(map[time.Time]*run)
	for i, d := range days {
		if i > 0 && d.Equal(days[i-1]) {
			return nil, &DuplicateDateError{Date: d}
		}
		anchor := d.AddDate(0, 0, -i)
		r, ok := runs[anchor]
		if !ok {
			r = &run{first: d}
			runs[anchor] = r
			anchors = append(anchors, anchor)
		}
		r.last = d
		r.count++
	}

	// anchors were appended while scanning sorted days, so island start
	// order is already ascending.
	out := make([]Island, 0, len(anchors))
	for _, a := range anchors {
		r := runs[a]
		out = append(out, Island{Start: r.first, End: r.last, Days: r.count})
	}
	return out, nil
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
