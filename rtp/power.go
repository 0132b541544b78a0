package rtp

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/superdarn/godarn/superdarn"
)

// Stat selects how a record's lag-0 power profile is reduced to one
// number.
type Stat int

const (
	Mean Stat = iota
	Min
	Max
)

func (s Stat) String() string {
	switch s {
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "mean"
	}
}

func (s Stat) reduce(values []float64) float64 {
	switch s {
	case Min:
		return floats.Min(values)
	case Max:
		return floats.Max(values)
	default:
		return stat.Mean(values, nil)
	}
}

// LagZeroPower plots a statistic of the lag-0 power profile against
// time for one beam. With splitFreq > 0 [kHz] the records are divided
// into two series below and above that frequency, the usual way of
// checking interference when a radar alternates sounding bands.
func LagZeroPower(records []superdarn.Record, beam int, splitFreq float64, s Stat) (*plot.Plot, error) {
	var low, high plotter.XYs
	for _, rec := range records {
		bm, err := rec.Int("bmnum")
		if err != nil || bm != beam {
			continue
		}
		if !rec.Has("pwr0") {
			continue
		}
		pwr0, err := rec.Floats("pwr0")
		if err != nil {
			return nil, err
		}
		if len(pwr0) == 0 {
			continue
		}
		t, err := rec.Time()
		if err != nil {
			return nil, err
		}
		pt := plotter.XY{X: float64(t.Unix()), Y: s.reduce(pwr0)}

		if splitFreq > 0 {
			tfreq, err := rec.Float64("tfreq")
			if err != nil {
				return nil, err
			}
			if tfreq < splitFreq {
				low = append(low, pt)
			} else {
				high = append(high, pt)
			}
		} else {
			low = append(low, pt)
		}
	}
	if len(low) == 0 && len(high) == 0 {
		return nil, &superdarn.NoDataError{
			What: fmt.Sprintf("beam %d lag-0 power", beam),
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].X < low[j].X })
	sort.Slice(high, func(i, j int) bool { return high[i].X < high[j].X })

	p := plot.New()
	p.Title.Text = fmt.Sprintf("lag-0 power %s, beam %d", s, beam)
	p.X.Label.Text = "time (UT)"
	p.Y.Label.Text = "power (dB)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04", Time: plot.UnixTimeIn(time.UTC)}

	if len(low) > 0 {
		line, err := plotter.NewLine(low)
		if err != nil {
			return nil, err
		}
		line.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
		p.Add(line)
		if splitFreq > 0 {
			p.Legend.Add(fmt.Sprintf("< %.0f kHz", splitFreq), line)
		}
	}
	if len(high) > 0 {
		line, err := plotter.NewLine(high)
		if err != nil {
			return nil, err
		}
		line.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf(">= %.0f kHz", splitFreq), line)
	}
	p.Legend.Top = true
	return p, nil
}
