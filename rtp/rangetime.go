package rtp

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/superdarn/godarn/superdarn"
)

// Options control the appearance of a range-time plot.
type Options struct {
	Field         string  // gate array to plot, e.g. "p_l", "v", "w_l", "elv"
	Beam          int     // beam number to select
	GroundScatter bool    // mask ground scatter cells grey
	ZMin, ZMax    float64 // color range; both zero means take it from the data
	Levels        int     // number of discrete colors, default 50
}

// beamGrid adapts one beam's gate data to plotter.GridXYZ. Columns are
// record times in unix seconds, rows are range gates; cells without a
// fitted echo are NaN.
type beamGrid struct {
	times []float64
	gates int
	z     [][]float64 // [col][row]
}

func (g *beamGrid) Dims() (c, r int)   { return len(g.times), g.gates }
func (g *beamGrid) X(c int) float64    { return g.times[c] }
func (g *beamGrid) Y(r int) float64    { return float64(r) }
func (g *beamGrid) Z(c, r int) float64 { return g.z[c][r] }

// newBeamGrid extracts field (and optionally the ground scatter flags)
// for one beam. The returned gsGrid is nil unless withGs is set.
func newBeamGrid(records []superdarn.Record, beam int, field string, withGs bool) (*beamGrid, *beamGrid, error) {
	type column struct {
		t     float64
		z     []float64
		gs    []float64
		gates int
	}
	var cols []column
	for _, rec := range records {
		bm, err := rec.Int("bmnum")
		if err != nil || bm != beam {
			continue
		}
		nrang, err := rec.Int("nrang")
		if err != nil {
			return nil, nil, err
		}
		t, err := rec.Time()
		if err != nil {
			return nil, nil, err
		}
		col := column{
			t:     float64(t.Unix()),
			z:     nanRow(nrang),
			gs:    nanRow(nrang),
			gates: nrang,
		}
		// Records with no echoes still occupy a column so gaps show.
		if rec.Has("slist") && rec.Has(field) {
			slist, err := rec.Ints("slist")
			if err != nil {
				return nil, nil, err
			}
			values, err := rec.Floats(field)
			if err != nil {
				return nil, nil, err
			}
			var gflg []int
			if rec.Has("gflg") {
				if gflg, err = rec.Ints("gflg"); err != nil {
					return nil, nil, err
				}
			}
			for i, gate := range slist {
				if gate < 0 || gate >= nrang || i >= len(values) {
					continue
				}
				col.z[gate] = values[i]
				if withGs && i < len(gflg) && gflg[i] == 1 {
					col.gs[gate] = 0
					col.z[gate] = math.NaN()
				}
			}
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, nil, &superdarn.NoDataError{
			What: fmt.Sprintf("beam %d field %q", beam, field),
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].t < cols[j].t })

	grid := &beamGrid{}
	gs := &beamGrid{}
	for _, c := range cols {
		grid.times = append(grid.times, c.t)
		grid.z = append(grid.z, c.z)
		gs.times = append(gs.times, c.t)
		gs.z = append(gs.z, c.gs)
		if c.gates > grid.gates {
			grid.gates = c.gates
		}
	}
	gs.gates = grid.gates
	for i := range grid.z {
		grid.z[i] = padRow(grid.z[i], grid.gates)
		gs.z[i] = padRow(gs.z[i], grid.gates)
	}
	if !withGs {
		gs = nil
	}
	return grid, gs, nil
}

// RangeTime builds a range-time parameter heat map for one beam.
func RangeTime(records []superdarn.Record, opts Options) (*plot.Plot, error) {
	if opts.Field == "" {
		opts.Field = "p_l"
	}
	grid, gs, err := newBeamGrid(records, opts.Beam, opts.Field, opts.GroundScatter)
	if err != nil {
		return nil, err
	}

	levels := opts.Levels
	if levels <= 0 {
		levels = 50
	}
	gradient := fieldGradient(opts.Field)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, beam %d", opts.Field, opts.Beam)
	p.X.Label.Text = "time (UT)"
	p.Y.Label.Text = "range gate"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04", Time: plot.UnixTimeIn(time.UTC)}

	hm := plotter.NewHeatMap(grid, gradient.Palette(levels))
	if opts.ZMin != 0 || opts.ZMax != 0 {
		hm.Min, hm.Max = opts.ZMin, opts.ZMax
	}
	p.Add(hm)

	if gs != nil {
		mask := plotter.NewHeatMap(gs, greyMap.Palette(2))
		mask.Min, mask.Max = -1, 1
		p.Add(mask)
	}

	log.WithFields(log.Fields{
		"field":   opts.Field,
		"beam":    opts.Beam,
		"columns": len(grid.times),
		"gates":   grid.gates,
	}).Debug("built range-time grid")
	return p, nil
}

// SavePNG renders a plot to a PNG file at the given size.
func SavePNG(p *plot.Plot, width, height vg.Length, path string) error {
	return p.Save(width, height, path)
}

// writePNG renders pre-aligned canvases sharing one image to a file.
func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// padRow grows a row to n gates, filling with NaN.
func padRow(row []float64, n int) []float64 {
	for len(row) < n {
		row = append(row, math.NaN())
	}
	return row
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}
