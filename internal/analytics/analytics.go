// Package analytics computes the aggregated views the dashboard renders:
// overview counts, location breakdowns, time-bucketed additions and the
// financial summaries. All functions are pure computations over a
// dataset.Table; rows with missing or unparseable cells are excluded from
// the affected aggregate rather than failing the view.
package analytics

import (
	"sort"

	"assetgauge/internal/dataset"
)

// ValueCount is one bar of a distribution view.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary is the headline metric row of the dashboard.
type Summary struct {
	TotalAssets  int `json:"total_assets"`
	Buildings    int `json:"buildings"`
	Rooms        int `json:"rooms"`
	ActiveAssets int `json:"active_assets"`

	TopBuildings []ValueCount `json:"top_buildings"`
	TopRooms     []ValueCount `json:"top_rooms"`
	ActiveSplit  []ValueCount `json:"active_split"`
}

// Summarize computes the overview metrics and top-N distributions.
func Summarize(t *dataset.Table, topN int) Summary {
	return Summary{
		TotalAssets:  t.NumRows(),
		Buildings:    t.CountDistinct("Building"),
		Rooms:        t.CountDistinct("Room Name"),
		ActiveAssets: countMatching(t, "Active", "Yes"),
		TopBuildings: topCounts(ValueCounts(t, "Building"), topN),
		TopRooms:     topCounts(ValueCounts(t, "Room Name"), topN),
		ActiveSplit:  ValueCounts(t, "Active"),
	}
}

// ValueCounts returns per-value row counts for a column, sorted by count
// descending with value as tie-breaker. An absent column yields nil.
func ValueCounts(t *dataset.Table, column string) []ValueCount {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}

	counts := make(map[string]int)
	for r := 0; r < t.NumRows(); r++ {
		v := t.Cell(r, idx)
		if v == "" {
			continue
		}
		counts[v]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// countMatching counts rows whose column equals value exactly.
func countMatching(t *dataset.Table, column, value string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}
	n := 0
	for r := 0; r < t.NumRows(); r++ {
		if t.Cell(r, idx) == value {
			n++
		}
	}
	return n
}

// topCounts truncates a sorted count slice to at most n entries.
func topCounts(counts []ValueCount, n int) []ValueCount {
	if n > 0 && len(counts) > n {
		return counts[:n]
	}
	return counts
}
