package rtp

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/superdarn/godarn/superdarn"
)

// HTMLReport writes an interactive report for one beam: a sounding
// frequency line chart and a lag-0 power heat map rendered with echarts.
func HTMLReport(records []superdarn.Record, beam int, path string) error {
	freq, err := frequencyChart(records, beam)
	if err != nil {
		return err
	}
	power, err := powerHeatMap(records, beam)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "godarn report"
	page.AddCharts(freq, power)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func frequencyChart(records []superdarn.Record, beam int) (*charts.Line, error) {
	pts, err := seriesPoints(records, "tfreq", beam)
	if err != nil {
		return nil, err
	}

	var labels []string
	var data []opts.LineData
	for _, pt := range pts {
		labels = append(labels, time.Unix(int64(pt.X), 0).UTC().Format("15:04:05"))
		data = append(data, opts.LineData{Value: pt.Y})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("sounding frequency, beam %d", beam),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kHz"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).AddSeries("tfreq", data)
	return line, nil
}

func powerHeatMap(records []superdarn.Record, beam int) (*charts.HeatMap, error) {
	grid, _, err := newBeamGrid(records, beam, "p_l", false)
	if err != nil {
		return nil, err
	}

	var labels []string
	var data []opts.HeatMapData
	zmin, zmax := 0.0, 0.0
	for col, t := range grid.times {
		labels = append(labels, time.Unix(int64(t), 0).UTC().Format("15:04:05"))
		for gate := 0; gate < grid.gates; gate++ {
			z := grid.Z(col, gate)
			if math.IsNaN(z) {
				continue
			}
			if len(data) == 0 || z < zmin {
				zmin = z
			}
			if len(data) == 0 || z > zmax {
				zmax = z
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{col, gate, z},
			})
		}
	}
	if len(data) == 0 {
		return nil, &superdarn.NoDataError{
			What: fmt.Sprintf("beam %d power report", beam),
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("lag-0 power, beam %d", beam),
		}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "gate"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(zmin),
			Max:        float32(zmax),
		}),
	)
	hm.SetXAxis(labels).AddSeries("p_l", data)
	return hm, nil
}
