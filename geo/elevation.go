package geo

import (
	"math"

	"github.com/superdarn/godarn/radar"
	"github.com/superdarn/godarn/superdarn"
)

// RecalculateElevation recomputes the elevation angles of fitacf records
// for a different tdiff value (the propagation time difference between
// the interferometer and main array paths, in microseconds). It is meant
// for quickly checking the effect of tdiff at the visualization step, not
// for refitting. The result maps record index to elevation angles [deg],
// one per slist entry; records without interferometer phase data get an
// empty slice. Phase combinations with no physical elevation come back as
// NaN.
func RecalculateElevation(records []superdarn.Record, tdiff, boresightOffset float64) (map[int][]float64, error) {
	out := make(map[int][]float64, len(records))
	for i, rec := range records {
		if !rec.Has("phi0") {
			out[i] = []float64{}
			continue
		}
		elv, err := recordElevation(rec, tdiff, boresightOffset)
		if err != nil {
			return nil, err
		}
		out[i] = elv
	}
	return out, nil
}

func recordElevation(rec superdarn.Record, tdiff, boresightOffset float64) ([]float64, error) {
	phi0, err := rec.Floats("phi0")
	if err != nil {
		return nil, err
	}
	stid, err := rec.Int("stid")
	if err != nil {
		return nil, err
	}
	stn, err := radar.Lookup(stid)
	if err != nil {
		return nil, err
	}
	bmnum, err := rec.Int("bmnum")
	if err != nil {
		return nil, err
	}
	tfreq, err := rec.Float64("tfreq")
	if err != nil {
		return nil, err
	}

	intf := stn.InterferometerOffset
	antennaSep := math.Sqrt(intf[0]*intf[0] + intf[1]*intf[1] + intf[2]*intf[2])
	if antennaSep == 0 {
		return nil, &superdarn.NoDataError{What: "interferometer geometry"}
	}
	// Interferometer in front of (+1) or behind (-1) the main array.
	phiSign := 1.0
	if intf[1] < 0 {
		phiSign = -1.0
	}

	offset := float64(stn.Beams)/2.0 - 0.5
	phi := radians(stn.BeamSep*(float64(bmnum)-offset) + boresightOffset)
	cosPhi := math.Cos(phi)

	// Wave number for the sounding frequency (tfreq is in kHz).
	k := 2.0 * math.Pi * tfreq * 1000.0 / C
	// Phase shift introduced by the cable length difference.
	dchiCable := -2.0 * math.Pi * tfreq * 1000.0 * tdiff * 1.0e-6
	// Largest phase shift the geometry allows.
	chiMax := phiSign*k*antennaSep*cosPhi + dchiCable

	elv := make([]float64, len(phi0))
	for j, p := range phi0 {
		phiTemp := p + 2.0*math.Pi*math.Floor((chiMax-p)/(2.0*math.Pi))
		if phiSign < 0 {
			phiTemp += 2.0 * math.Pi
		}
		psi := phiTemp - dchiCable

		theta := psi / (k * antennaSep)
		theta = cosPhi*cosPhi - theta*theta
		if theta < 0 || theta > 1 {
			elv[j] = math.NaN()
			continue
		}
		elv[j] = degrees(math.Asin(math.Sqrt(theta)))
	}
	return elv, nil
}
