package rtp

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/superdarn/godarn/superdarn"
)

// scalar fields that are conventionally drawn on a log axis.
var logScaleFields = map[string]bool{
	"noise.search": true,
	"noise.sky":    true,
}

// seriesPoints pulls one scalar field for one beam, ordered by time.
func seriesPoints(records []superdarn.Record, field string, beam int) (plotter.XYs, error) {
	var pts plotter.XYs
	for _, rec := range records {
		bm, err := rec.Int("bmnum")
		if err != nil || bm != beam {
			continue
		}
		if !rec.Has(field) {
			continue
		}
		v, err := rec.Float64(field)
		if err != nil {
			return nil, err
		}
		t, err := rec.Time()
		if err != nil {
			return nil, err
		}
		pts = append(pts, plotter.XY{X: float64(t.Unix()), Y: v})
	}
	if len(pts) == 0 {
		return nil, &superdarn.NoDataError{
			What: fmt.Sprintf("beam %d scalar %q", beam, field),
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts, nil
}

// TimeSeries plots one scalar field (tfreq, nave, noise.search, cp...)
// against time for a single beam.
func TimeSeries(records []superdarn.Record, field string, beam int) (*plot.Plot, error) {
	pts, err := seriesPoints(records, field, beam)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, beam %d", field, beam)
	p.X.Label.Text = "time (UT)"
	p.Y.Label.Text = field
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04", Time: plot.UnixTimeIn(time.UTC)}
	if logScaleFields[field] {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	p.Add(line)
	return p, nil
}
