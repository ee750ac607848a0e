// Package charts renders the dashboard's chart views as self-contained
// HTML pages using go-echarts. Each renderer takes an analytics result for
// the currently filtered table; the dashboard page embeds the output in
// iframes and reloads them when the filters change.
package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"assetgauge/internal/analytics"
)

// Chart is the subset of the go-echarts charter API the handlers need.
type Chart interface {
	Render(w io.Writer) error
}

// BuildingBar renders the "Assets by Building" bar chart.
func BuildingBar(counts []analytics.ValueCount, title string) Chart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	names := make([]string, len(counts))
	values := make([]opts.BarData, len(counts))
	for i, c := range counts {
		names[i] = c.Value
		values[i] = opts.BarData{Value: c.Count}
	}
	bar.SetXAxis(names).AddSeries("Assets", values)
	return bar
}

// RoomPie renders the "Assets by Room" pie chart.
func RoomPie(counts []analytics.ValueCount, title string) Chart {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	values := make([]opts.PieData, len(counts))
	for i, c := range counts {
		values[i] = opts.PieData{Name: c.Value, Value: c.Count}
	}
	pie.AddSeries("Assets", values)
	return pie
}

// ActiveBar renders the active-vs-inactive bar chart.
func ActiveBar(counts []analytics.ValueCount) Chart {
	return BuildingBar(counts, "Active vs Inactive Assets")
}

// DailyLine renders a per-day time series of the timeline view.
func DailyLine(tl analytics.Timeline, title string) Chart {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	dates := make([]string, len(tl.Daily))
	values := make([]opts.LineData, len(tl.Daily))
	for i, d := range tl.Daily {
		dates[i] = d.Bucket
		values[i] = opts.LineData{Value: d.Count}
	}
	line.SetXAxis(dates).AddSeries("Assets", values)
	return line
}

// MonthlyBar renders the per-month bucket bar chart of the timeline view.
func MonthlyBar(tl analytics.Timeline, title string) Chart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	months := make([]string, len(tl.Monthly))
	values := make([]opts.BarData, len(tl.Monthly))
	for i, m := range tl.Monthly {
		months[i] = m.Bucket
		values[i] = opts.BarData{Value: m.Count}
	}
	bar.SetXAxis(months).AddSeries("Assets", values)
	return bar
}

// LocationTreemap renders the per-building asset footprint as a treemap.
func LocationTreemap(breakdown analytics.LocationBreakdown, title string) Chart {
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	nodes := make([]opts.TreeMapNode, len(breakdown.ByBuilding))
	for i, b := range breakdown.ByBuilding {
		nodes[i] = opts.TreeMapNode{Name: b.Value, Value: b.Count}
	}
	tm.AddSeries("Assets", nodes)
	return tm
}

// LocationSunburst renders the building and room hierarchy as a sunburst.
// Rooms nest under their building; a blank room groups under the
// building alone.
func LocationSunburst(breakdown analytics.LocationBreakdown, title string) Chart {
	sb := charts.NewSunburst()
	sb.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	rooms := make(map[string][]*opts.SunBurstData)
	for _, lc := range breakdown.ByRoom {
		name := lc.Room
		if name == "" {
			name = "(unassigned)"
		}
		rooms[lc.Building] = append(rooms[lc.Building], &opts.SunBurstData{
			Name:  name,
			Value: float64(lc.Count),
		})
	}

	data := make([]opts.SunBurstData, len(breakdown.ByBuilding))
	for i, b := range breakdown.ByBuilding {
		data[i] = opts.SunBurstData{Name: b.Value, Children: rooms[b.Value]}
	}
	sb.AddSeries("Assets", data)
	return sb
}

// histogramBins is the bucket count of the cost distribution chart.
const histogramBins = 50

// CostHistogram buckets the cost values into equal-width bins and renders
// them as a bar chart.
func CostHistogram(values []float64) Chart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Asset Cost Distribution"}))

	labels, buckets := histogram(values, histogramBins)
	data := make([]opts.BarData, len(buckets))
	for i, n := range buckets {
		data[i] = opts.BarData{Value: n}
	}
	bar.SetXAxis(labels).AddSeries("Assets", data)
	return bar
}

// histogram computes equal-width bucket counts and their range labels.
func histogram(values []float64, bins int) ([]string, []int) {
	if len(values) == 0 || bins <= 0 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []string{fmt.Sprintf("%.2f", min)}, []int{len(values)}
	}

	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.2f", min+width*float64(i))
	}
	return labels, counts
}
