package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/superdarn/godarn/superdarn"
)

// powerProfile picks the idx-th record of the given beam and returns its
// lag-0 power per gate, NaN where no echo was fitted.
func powerProfile(records []superdarn.Record, beam, idx int) ([]float64, time.Time, error) {
	seen := 0
	for _, rec := range records {
		bm, err := rec.Int("bmnum")
		if err != nil || bm != beam {
			continue
		}
		if seen != idx {
			seen++
			continue
		}
		nrang, err := rec.Int("nrang")
		if err != nil {
			return nil, time.Time{}, err
		}
		when, err := rec.Time()
		if err != nil {
			return nil, time.Time{}, err
		}
		profile := make([]float64, nrang)
		for i := range profile {
			profile[i] = math.NaN()
		}
		if rec.Has("slist") && rec.Has("pwr0") {
			slist, err := rec.Ints("slist")
			if err != nil {
				return nil, time.Time{}, err
			}
			pwr0, err := rec.Floats("pwr0")
			if err != nil {
				return nil, time.Time{}, err
			}
			for i, gate := range slist {
				if gate >= 0 && gate < nrang && i < len(pwr0) {
					profile[gate] = pwr0[i]
				}
			}
		}
		return profile, when, nil
	}
	return nil, time.Time{}, &superdarn.NoDataError{
		What: fmt.Sprintf("beam %d record %d", beam, idx),
	}
}

type profileView struct {
	points []f32.Point
}

func run(w *app.Window, profile []float64) error {
	view := &profileView{points: normalizePoints(profile)}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			view.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *profileView) draw(gtx layout.Context) layout.Dimensions {
	rect := image.Rect(100, 50, gtx.Constraints.Max.X-50, gtx.Constraints.Max.Y-50)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 230, G: 230, B: 230, A: 255}, clip.Rect(rect).Op())

	// Axes.
	var axes clip.Path
	axes.Begin(gtx.Ops)
	axes.MoveTo(f32.Pt(float32(rect.Min.X), float32(rect.Min.Y)))
	axes.LineTo(f32.Pt(float32(rect.Min.X), float32(rect.Max.Y)))
	axes.LineTo(f32.Pt(float32(rect.Max.X), float32(rect.Max.Y)))
	paint.FillShape(gtx.Ops, color.NRGBA{A: 255}, clip.Stroke{
		Path:  axes.End(),
		Width: 2,
	}.Op())

	if len(v.points) > 1 {
		var path clip.Path
		path.Begin(gtx.Ops)

		scaled := scalePoints(v.points, rect)
		path.MoveTo(scaled[0])
		for _, p := range scaled[1:] {
			path.LineTo(p)
		}

		paint.FillShape(gtx.Ops, color.NRGBA{R: 0xc0, G: 0x16, B: 0x13, A: 255}, clip.Stroke{
			Path:  path.End(),
			Width: 2,
		}.Op())
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func scalePoints(points []f32.Point, rect image.Rectangle) []f32.Point {
	scaled := make([]f32.Point, len(points))
	for i, p := range points {
		scaled[i] = f32.Point{
			X: float32(rect.Min.X) + p.X*float32(rect.Dx()),
			Y: float32(rect.Max.Y) - p.Y*float32(rect.Dy()),
		}
	}
	return scaled
}

// normalizePoints maps the profile to the unit square, gate index on X
// and power on Y. Gates without an echo sit on the baseline.
func normalizePoints(profile []float64) []f32.Point {
	if len(profile) < 2 {
		return nil
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range profile {
		if math.IsNaN(v) {
			continue
		}
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	if minY > maxY {
		return nil
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	points := make([]f32.Point, len(profile))
	for i, v := range profile {
		y := 0.0
		if !math.IsNaN(v) {
			y = (v - minY) / rangeY
		}
		points[i] = f32.Point{
			X: float32(i) / float32(len(profile)-1),
			Y: float32(y),
		}
	}
	return points
}
