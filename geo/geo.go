// Package geo maps radar measurements into geographic space: slant
// ranges, range-gate cell positions, field-of-view grids, interferometer
// elevation angles and the solar terminator.
package geo

import (
	"math"

	"github.com/superdarn/godarn/radar"
)

// Physical constants.
const (
	Re               = 6371.0     // Earth mean radius [km]
	EquatorialRadius = 6378.137   // WGS84 equatorial radius [km]
	C                = 2.99792458e8 // speed of light [m/s]
)

// SlantRange returns the slant range [km] to a range gate given the
// distance to the first gate frang [km] and the gate length rsep [km].
// With center false the range to the near edge of the gate is returned
// instead of its center.
func SlantRange(frang, rsep float64, gate int, center bool) float64 {
	edge := 0.0
	if !center {
		edge = -0.5 * rsep
	}
	return frang + float64(gate)*rsep + edge
}

// VirtualHeight returns the assumed reflection height [km] for a slant
// range, using either the standard model or the Chisham et al. (2008)
// polynomial model.
func VirtualHeight(slantRange, height float64, chisham bool) float64 {
	if chisham {
		switch {
		case slantRange < 115:
			return slantRange / 115.0 * 112.0
		case slantRange < 787.5:
			return 108.974 + 0.0191271*slantRange + 6.68283e-5*slantRange*slantRange
		case slantRange <= 2137.5:
			return 384.416 - 0.178640*slantRange + 1.81405e-4*slantRange*slantRange
		default:
			return 1098.28 - 0.354557*slantRange + 9.39961e-5*slantRange*slantRange
		}
	}
	if slantRange < 150 {
		return slantRange / 150.0 * 115.0
	}
	if height <= 150 {
		return 115.0
	}
	if slantRange > 600 && slantRange < 800 {
		return (slantRange-600)/200.0*(height-115.0) + 115.0
	}
	return height
}

// GeodeticToGeocentric converts a geodetic latitude [rad] to geocentric
// latitude [rad] and returns the geocentric Earth radius [km] at that
// latitude on the WGS84 spheroid.
func GeodeticToGeocentric(lat float64) (glat, rho float64) {
	const f = 1.0 / 298.257223563
	b := EquatorialRadius * (1.0 - f)
	e2 := EquatorialRadius*EquatorialRadius/(b*b) - 1.0

	glat = math.Atan(b * b / (EquatorialRadius * EquatorialRadius) * math.Tan(lat))
	rho = EquatorialRadius / math.Sqrt(1.0+e2*math.Sin(glat)*math.Sin(glat))
	return glat, rho
}

// CellPosition returns the geographic latitude and longitude [deg] of a
// range-gate cell for the given station. Beam and gate address the cell,
// frang and rsep [km] give the range geometry and height [km] selects the
// virtual-height model input. With center false the lower-left corner of
// the cell is returned, which is what the field-of-view grids are built
// from.
func CellPosition(stn radar.Station, beam, gate int, frang, rsep, height float64, center, chisham bool) (lat, lon float64) {
	beamEdge := 0.0
	if !center {
		beamEdge = -0.5 * stn.BeamSep
	}

	// Azimuth offset from boresight for this beam.
	offset := float64(stn.Beams)/2.0 - 0.5
	psi := stn.BeamSep*(float64(beam)-offset) + beamEdge

	sr := SlantRange(frang, rsep, gate, center)
	h := VirtualHeight(sr, height, chisham)

	radarLat := radians(stn.Lat)
	radarLon := radians(stn.Lon)
	_, rRadar := GeodeticToGeocentric(radarLat)
	rRadar += stn.Alt / 1000.0
	cellRho := Re + h

	// Central angle radar -> cell over the spherical Earth, law of
	// cosines on the (radar, cell, Earth center) triangle.
	cosGamma := (rRadar*rRadar + cellRho*cellRho - sr*sr) / (2.0 * rRadar * cellRho)
	if cosGamma > 1 {
		cosGamma = 1
	} else if cosGamma < -1 {
		cosGamma = -1
	}
	gamma := math.Acos(cosGamma)

	azimuth := radians(stn.Boresight + psi)
	sinLat := math.Sin(radarLat)*math.Cos(gamma) +
		math.Cos(radarLat)*math.Sin(gamma)*math.Cos(azimuth)
	lat2 := math.Asin(sinLat)
	lon2 := radarLon + math.Atan2(
		math.Sin(azimuth)*math.Sin(gamma)*math.Cos(radarLat),
		math.Cos(gamma)-sinLat*math.Sin(lat2))

	return degrees(lat2), normalizeLon(degrees(lon2))
}

// FieldOfView returns the geographic corner coordinates of a radar's
// field of view as (gates+1) x (beams+1) grids of latitudes and
// longitudes.
func FieldOfView(stid int, height float64, chisham bool) (lats, lons [][]float64, err error) {
	stn, err := radar.Lookup(stid)
	if err != nil {
		return nil, nil, err
	}
	lats = make([][]float64, stn.Gates+1)
	lons = make([][]float64, stn.Gates+1)
	for gate := 0; gate <= stn.Gates; gate++ {
		lats[gate] = make([]float64, stn.Beams+1)
		lons[gate] = make([]float64, stn.Beams+1)
		for beam := 0; beam <= stn.Beams; beam++ {
			lat, lon := CellPosition(stn, beam, gate, defaultFrang, defaultRsep, height, false, chisham)
			lats[gate][beam] = lat
			lons[gate][beam] = lon
		}
	}
	return lats, lons, nil
}

// Default range geometry used when a file does not say otherwise.
const (
	defaultFrang = 180.0 // [km]
	defaultRsep  = 45.0  // [km]
)

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }
func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
