package analytics

import (
	"sort"

	"assetgauge/internal/dataset"
)

// DateCount is one time bucket of the timeline view.
type DateCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// Timeline is the time-bucketed view over one date column.
type Timeline struct {
	Column  string      `json:"column"`
	Daily   []DateCount `json:"daily"`
	Monthly []DateCount `json:"monthly"`
}

// TimelineFor buckets rows of a date column by day (2006-01-02) and month
// (2006-01), sorted chronologically. Rows whose cell does not parse as a
// date are excluded from the buckets, never fatal.
func TimelineFor(t *dataset.Table, column string) Timeline {
	tl := Timeline{Column: column}

	idx := t.ColumnIndex(column)
	if idx < 0 {
		return tl
	}

	daily := make(map[string]int)
	monthly := make(map[string]int)
	for r := 0; r < t.NumRows(); r++ {
		ts, ok := dataset.ParseDate(t.Cell(r, idx))
		if !ok {
			continue
		}
		daily[ts.Format("2006-01-02")]++
		monthly[ts.Format("2006-01")]++
	}

	tl.Daily = sortBuckets(daily)
	tl.Monthly = sortBuckets(monthly)
	return tl
}

// sortBuckets flattens a bucket map into chronological order. Bucket keys
// are zero-padded dates, so lexicographic order is chronological.
func sortBuckets(m map[string]int) []DateCount {
	out := make([]DateCount, 0, len(m))
	for k, n := range m {
		out = append(out, DateCount{Bucket: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
