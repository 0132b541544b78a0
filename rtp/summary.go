package rtp

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/superdarn/godarn/radar"
	"github.com/superdarn/godarn/superdarn"
)

// summary panel layout, top to bottom.
var (
	summaryScalars = []string{"noise.search", "tfreq", "nave"}
	summaryFields  = []string{"p_l", "v", "w_l"}
)

// Summary writes a stacked summary plot for one beam to a PNG file:
// scalar panels for sky noise, frequency and averages on top, range-time
// heat maps for power, velocity and spectral width below. Panels whose
// field is absent from the file are skipped; if nothing at all can be
// plotted an error is returned.
func Summary(records []superdarn.Record, beam int, path string) error {
	var panels []*plot.Plot

	for _, field := range summaryScalars {
		p, err := TimeSeries(records, field, beam)
		if err != nil {
			var noData *superdarn.NoDataError
			if errors.As(err, &noData) {
				log.WithField("field", field).Debug("summary panel skipped")
				continue
			}
			return err
		}
		p.Title.Text = ""
		p.X.Label.Text = ""
		panels = append(panels, p)
	}

	for _, field := range summaryFields {
		p, err := RangeTime(records, Options{
			Field:         field,
			Beam:          beam,
			GroundScatter: field == "v",
		})
		if err != nil {
			var noData *superdarn.NoDataError
			if errors.As(err, &noData) {
				log.WithField("field", field).Debug("summary panel skipped")
				continue
			}
			return err
		}
		p.Title.Text = ""
		if field != summaryFields[len(summaryFields)-1] {
			p.X.Label.Text = ""
		}
		p.Y.Label.Text = field
		panels = append(panels, p)
	}

	if len(panels) == 0 {
		return &superdarn.NoDataError{What: "summary panels"}
	}
	panels[0].Title.Text = summaryTitle(records, beam)

	const (
		width       = 9 * vg.Inch
		panelHeight = 1.6 * vg.Inch
	)
	img := vgimg.New(width, panelHeight*vg.Length(len(panels)))
	dc := draw.New(img)

	rows := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[i][0])
	}
	return writePNG(img, path)
}

func summaryTitle(records []superdarn.Record, beam int) string {
	for _, rec := range records {
		stid, err := rec.Int("stid")
		if err != nil {
			continue
		}
		t, err := rec.Time()
		if err != nil {
			continue
		}
		return summaryHeader(stid, beam, t)
	}
	return ""
}

func summaryHeader(stid, beam int, t time.Time) string {
	name := fmt.Sprintf("station %d", stid)
	if stn, err := radar.Lookup(stid); err == nil {
		name = stn.Name
	}
	return fmt.Sprintf("%s beam %d, %s", name, beam, t.Format("2006-01-02"))
}
