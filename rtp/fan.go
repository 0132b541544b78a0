package rtp

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/superdarn/godarn/geo"
	"github.com/superdarn/godarn/superdarn"
)

// Fan draws one scan of a radar as field-of-view cell polygons in
// geographic coordinates, colored by the given gate field. scan counts
// from 1 the way BuildScan numbers scans.
func Fan(records []superdarn.Record, scan int, field string) (*plot.Plot, error) {
	if field == "" {
		field = "p_l"
	}
	selected, err := superdarn.ScanRecords(records, scan)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, &superdarn.NoDataError{What: fmt.Sprintf("scan %d", scan)}
	}

	stid, err := selected[0].Int("stid")
	if err != nil {
		return nil, err
	}
	lats, lons, err := geo.FieldOfView(stid, 300, false)
	if err != nil {
		return nil, err
	}

	// Copy so the range set below never leaks into the shared gradients.
	gradient := *fieldGradient(field)
	zmin, zmax := math.Inf(1), math.Inf(-1)
	type cell struct {
		beam, gate int
		value      float64
	}
	var cells []cell
	for _, rec := range selected {
		beam, err := rec.Int("bmnum")
		if err != nil {
			return nil, err
		}
		if !rec.Has("slist") || !rec.Has(field) {
			continue
		}
		slist, err := rec.Ints("slist")
		if err != nil {
			return nil, err
		}
		values, err := rec.Floats(field)
		if err != nil {
			return nil, err
		}
		for i, gate := range slist {
			if i >= len(values) || beam < 0 || gate < 0 ||
				gate+1 >= len(lats) || beam+1 >= len(lats[0]) {
				continue
			}
			v := values[i]
			zmin = math.Min(zmin, v)
			zmax = math.Max(zmax, v)
			cells = append(cells, cell{beam: beam, gate: gate, value: v})
		}
	}
	if len(cells) == 0 {
		return nil, &superdarn.NoDataError{
			What: fmt.Sprintf("scan %d field %q", scan, field),
		}
	}
	if zmin == zmax {
		zmax = zmin + 1
	}
	gradient.SetMin(zmin)
	gradient.SetMax(zmax)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, scan %d", field, scan)
	p.X.Label.Text = "longitude (deg)"
	p.Y.Label.Text = "latitude (deg)"

	for _, c := range cells {
		xy := plotter.XYs{
			{X: lons[c.gate][c.beam], Y: lats[c.gate][c.beam]},
			{X: lons[c.gate][c.beam+1], Y: lats[c.gate][c.beam+1]},
			{X: lons[c.gate+1][c.beam+1], Y: lats[c.gate+1][c.beam+1]},
			{X: lons[c.gate+1][c.beam], Y: lats[c.gate+1][c.beam]},
		}
		poly, err := plotter.NewPolygon(xy)
		if err != nil {
			return nil, err
		}
		fill, err := gradient.At(c.value)
		if err != nil {
			return nil, err
		}
		poly.Color = fill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	// Field-of-view outline.
	outline, err := fovOutline(lats, lons)
	if err != nil {
		return nil, err
	}
	p.Add(outline)

	log.WithFields(log.Fields{
		"scan":  scan,
		"field": field,
		"cells": len(cells),
	}).Debug("built fan plot")
	return p, nil
}

// fovOutline traces the border of the field of view as one line.
func fovOutline(lats, lons [][]float64) (*plotter.Line, error) {
	gates := len(lats) - 1
	beams := len(lats[0]) - 1
	var xy plotter.XYs
	for beam := 0; beam <= beams; beam++ {
		xy = append(xy, plotter.XY{X: lons[0][beam], Y: lats[0][beam]})
	}
	for gate := 1; gate <= gates; gate++ {
		xy = append(xy, plotter.XY{X: lons[gate][beams], Y: lats[gate][beams]})
	}
	for beam := beams - 1; beam >= 0; beam-- {
		xy = append(xy, plotter.XY{X: lons[gates][beam], Y: lats[gates][beam]})
	}
	for gate := gates - 1; gate >= 0; gate-- {
		xy = append(xy, plotter.XY{X: lons[gate][0], Y: lats[gate][0]})
	}
	return plotter.NewLine(xy)
}
