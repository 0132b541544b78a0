// Package radar holds the SuperDARN radar hardware table: per-station
// geographic position, antenna geometry and interferometer configuration.
// The table ships with the package in hdw format and individual stations
// are looked up by station identifier (stid) or by abbreviation.
package radar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Hemisphere is the hemisphere a radar observes in.
type Hemisphere int

const (
	North Hemisphere = 1
	South Hemisphere = -1
)

func (h Hemisphere) String() string {
	if h == South {
		return "south"
	}
	return "north"
}

// Station is one radar's hardware configuration.
type Station struct {
	StationID int
	Abbrev    string
	Name      string
	Status    int
	Lat       float64 // geographic latitude [deg]
	Lon       float64 // geographic longitude [deg]
	Alt       float64 // altitude above sea level [m]
	Boresight float64 // physical boresight azimuth [deg]
	BeamSep   float64 // angular separation between beams [deg]
	VDir      int     // velocity sign
	PhaseSign int     // interferometer cable swap correction
	TdiffA    float64 // propagation time difference, channel A [us]
	TdiffB    float64 // propagation time difference, channel B [us]
	// InterferometerOffset is the displacement of the interferometer
	// array from the main array: x (right of boresight), y (along
	// boresight), z (up), in meters.
	InterferometerOffset [3]float64
	RxRise               float64 // receiver rise time [us]
	Beams                int
	Gates                int
}

// Hemisphere returns the hemisphere the station sits in.
func (s Station) Hemisphere() Hemisphere {
	if s.Lat < 0 {
		return South
	}
	return North
}

// hdw columns, whitespace separated:
// stid abbrev status lat lon alt boresight beam_sep vdir phase_sign
// tdiff_a tdiff_b intf_x intf_y intf_z rxrise beams gates
const hdwColumns = 18

// ParseHdw reads stations from hdw-format text. Blank lines and lines
// starting with # are skipped.
func ParseHdw(r io.Reader) ([]Station, error) {
	var stations []Station
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != hdwColumns {
			return nil, fmt.Errorf("radar: hdw line %d has %d fields, want %d", line, len(fields), hdwColumns)
		}
		stn, err := parseStation(fields)
		if err != nil {
			return nil, fmt.Errorf("radar: hdw line %d: %w", line, err)
		}
		stations = append(stations, stn)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

func parseStation(fields []string) (Station, error) {
	var stn Station
	var err error

	ints := []struct {
		dst *int
		pos int
	}{
		{&stn.StationID, 0}, {&stn.Status, 2}, {&stn.VDir, 8},
		{&stn.PhaseSign, 9}, {&stn.Beams, 16}, {&stn.Gates, 17},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(fields[f.pos]); err != nil {
			return stn, err
		}
	}

	floats := []struct {
		dst *float64
		pos int
	}{
		{&stn.Lat, 3}, {&stn.Lon, 4}, {&stn.Alt, 5},
		{&stn.Boresight, 6}, {&stn.BeamSep, 7},
		{&stn.TdiffA, 10}, {&stn.TdiffB, 11},
		{&stn.InterferometerOffset[0], 12},
		{&stn.InterferometerOffset[1], 13},
		{&stn.InterferometerOffset[2], 14},
		{&stn.RxRise, 15},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(fields[f.pos], 64); err != nil {
			return stn, err
		}
	}

	stn.Abbrev = fields[1]
	stn.Name = stationNames[stn.StationID]
	return stn, nil
}
