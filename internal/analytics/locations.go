package analytics

import (
	"sort"

	"assetgauge/internal/dataset"
)

// LocationCount is one (building, room) grouping of the location view.
type LocationCount struct {
	Building string `json:"building"`
	Room     string `json:"room"`
	Count    int    `json:"count"`
}

// LocationBreakdown is the location analysis view: per-building counts and
// the building/room cross-tabulation, both sorted by count descending.
type LocationBreakdown struct {
	ByBuilding []ValueCount    `json:"by_building"`
	ByRoom     []LocationCount `json:"by_room"`
}

// Locations computes the location breakdown. Rows with a blank building are
// excluded; a blank room groups under the building alone.
func Locations(t *dataset.Table) LocationBreakdown {
	breakdown := LocationBreakdown{
		ByBuilding: ValueCounts(t, "Building"),
	}

	bIdx := t.ColumnIndex("Building")
	rIdx := t.ColumnIndex("Room Name")
	if bIdx < 0 || rIdx < 0 {
		return breakdown
	}

	type key struct{ building, room string }
	counts := make(map[key]int)
	for r := 0; r < t.NumRows(); r++ {
		building := t.Cell(r, bIdx)
		if building == "" {
			continue
		}
		counts[key{building, t.Cell(r, rIdx)}]++
	}

	rooms := make([]LocationCount, 0, len(counts))
	for k, n := range counts {
		rooms = append(rooms, LocationCount{Building: k.building, Room: k.room, Count: n})
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Count != rooms[j].Count {
			return rooms[i].Count > rooms[j].Count
		}
		if rooms[i].Building != rooms[j].Building {
			return rooms[i].Building < rooms[j].Building
		}
		return rooms[i].Room < rooms[j].Room
	})
	breakdown.ByRoom = rooms
	return breakdown
}
