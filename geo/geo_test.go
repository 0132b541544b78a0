package geo

import (
	"math"
	"testing"
	"time"

	"github.com/superdarn/godarn/radar"
	"github.com/superdarn/godarn/superdarn"
)

func TestSlantRange(t *testing.T) {
	if got := SlantRange(180, 45, 0, true); got != 180 {
		t.Errorf("gate 0 center = %v, want 180", got)
	}
	if got := SlantRange(180, 45, 10, true); got != 630 {
		t.Errorf("gate 10 center = %v, want 630", got)
	}
	if got := SlantRange(180, 45, 10, false); got != 607.5 {
		t.Errorf("gate 10 edge = %v, want 607.5", got)
	}
}

func TestVirtualHeight(t *testing.T) {
	if got := VirtualHeight(100, 300, false); math.Abs(got-76.667) > 0.01 {
		t.Errorf("short range standard = %v, want ~76.667", got)
	}
	if got := VirtualHeight(500, 300, false); got != 300 {
		t.Errorf("mid range standard = %v, want 300", got)
	}
	if got := VirtualHeight(700, 300, false); got != 207.5 {
		t.Errorf("transition range standard = %v, want 207.5", got)
	}
	if got := VirtualHeight(100, 300, true); math.Abs(got-97.391) > 0.01 {
		t.Errorf("short range chisham = %v, want ~97.391", got)
	}
	if got := VirtualHeight(1000, 300, true); math.Abs(got-387.181) > 0.01 {
		t.Errorf("F region chisham = %v, want ~387.181", got)
	}
}

func TestGeodeticToGeocentric(t *testing.T) {
	glat, rho := GeodeticToGeocentric(0)
	if glat != 0 || rho != EquatorialRadius {
		t.Errorf("equator = (%v, %v), want (0, %v)", glat, rho, EquatorialRadius)
	}
	lat := radians(45)
	glat, rho = GeodeticToGeocentric(lat)
	if glat >= lat {
		t.Errorf("geocentric lat %v not below geodetic %v", glat, lat)
	}
	polar := EquatorialRadius * (1 - 1/298.257223563)
	if rho < polar || rho > EquatorialRadius {
		t.Errorf("rho = %v outside [%v, %v]", rho, polar, EquatorialRadius)
	}
}

func TestCellPosition(t *testing.T) {
	stn, err := radar.Lookup(65)
	if err != nil {
		t.Fatal(err)
	}
	lat0, lon0 := CellPosition(stn, 7, 0, 180, 45, 300, true, false)
	if math.Abs(lat0-stn.Lat) > 3 || math.Abs(lon0-stn.Lon) > 6 {
		t.Errorf("gate 0 cell (%v, %v) far from radar (%v, %v)",
			lat0, lon0, stn.Lat, stn.Lon)
	}
	// Rankin Inlet points almost due north so latitude grows with range.
	lat20, _ := CellPosition(stn, 7, 20, 180, 45, 300, true, false)
	lat50, _ := CellPosition(stn, 7, 50, 180, 45, 300, true, false)
	if !(lat50 > lat20 && lat20 > lat0) {
		t.Errorf("latitudes not increasing with range: %v %v %v", lat0, lat20, lat50)
	}
	if lat50 > 90 || lat50 < -90 {
		t.Errorf("lat50 = %v out of range", lat50)
	}
}

func TestFieldOfView(t *testing.T) {
	lats, lons, err := FieldOfView(65, 300, false)
	if err != nil {
		t.Fatal(err)
	}
	stn, _ := radar.Lookup(65)
	if len(lats) != stn.Gates+1 || len(lons) != stn.Gates+1 {
		t.Fatalf("got %d gate rows, want %d", len(lats), stn.Gates+1)
	}
	if len(lats[0]) != stn.Beams+1 {
		t.Fatalf("got %d beam corners, want %d", len(lats[0]), stn.Beams+1)
	}
	for _, row := range lats {
		for _, lat := range row {
			if math.IsNaN(lat) || lat < -90 || lat > 90 {
				t.Fatalf("bad corner latitude %v", lat)
			}
		}
	}
	if _, _, err := FieldOfView(9999, 300, false); err == nil {
		t.Error("unknown station did not fail")
	}
}

func TestSolarPosition(t *testing.T) {
	// June solstice, sun overhead near the Tropic of Cancer.
	lat, _ := SolarPosition(time.Date(2020, 6, 20, 21, 43, 0, 0, time.UTC))
	if math.Abs(lat-23.44) > 0.5 {
		t.Errorf("solstice declination = %v, want ~23.44", lat)
	}
	// March equinox, sun overhead near the equator.
	lat, lon := SolarPosition(time.Date(2020, 3, 20, 12, 0, 0, 0, time.UTC))
	if math.Abs(lat) > 1 {
		t.Errorf("equinox declination = %v, want ~0", lat)
	}
	// At noon UT the subsolar point sits near the Greenwich meridian,
	// offset only by the equation of time.
	if math.Abs(lon) > 5 {
		t.Errorf("noon subsolar longitude = %v, want ~0", lon)
	}
}

func TestTerminator(t *testing.T) {
	at := time.Date(2020, 3, 20, 12, 0, 0, 0, time.UTC)
	lat, lon, radius := Terminator(at, 0)
	slat, slon := SolarPosition(at)
	alat, alon := Antipode(slat, slon)
	if lat != alat || lon != alon {
		t.Errorf("terminator center (%v, %v) != antisolar point (%v, %v)",
			lat, lon, alat, alon)
	}
	quarter := Re * math.Pi / 2
	if math.Abs(radius-quarter) > 1e-9 {
		t.Errorf("ground terminator radius = %v, want %v", radius, quarter)
	}
	_, _, high := Terminator(at, 250)
	if high >= radius {
		t.Errorf("terminator at 250 km (%v) not smaller than at ground (%v)", high, radius)
	}
}

func TestRecalculateElevation(t *testing.T) {
	withPhase := superdarn.Record{
		"stid":  int16(65),
		"bmnum": int16(7),
		"tfreq": int16(12000),
		"phi0":  []float32{0.5, -1.2, 2.8},
	}
	noPhase := superdarn.Record{
		"stid":  int16(65),
		"bmnum": int16(7),
		"tfreq": int16(12000),
	}
	elv, err := RecalculateElevation([]superdarn.Record{withPhase, noPhase}, 0, 0)
	if err != nil {
		t.Fatalf("RecalculateElevation: %v", err)
	}
	if len(elv[0]) != 3 {
		t.Fatalf("got %d elevations, want 3", len(elv[0]))
	}
	for i, e := range elv[0] {
		if math.IsNaN(e) {
			continue
		}
		if e < 0 || e > 90 {
			t.Errorf("elevation[%d] = %v outside [0, 90]", i, e)
		}
	}
	if len(elv[1]) != 0 {
		t.Errorf("record without phi0 got %d elevations", len(elv[1]))
	}

	// A different tdiff must move the finite angles.
	shifted, err := RecalculateElevation([]superdarn.Record{withPhase}, 0.05, 0)
	if err != nil {
		t.Fatal(err)
	}
	moved := false
	for i := range elv[0] {
		if !math.IsNaN(elv[0][i]) && !math.IsNaN(shifted[0][i]) &&
			elv[0][i] != shifted[0][i] {
			moved = true
		}
	}
	if !moved {
		t.Error("tdiff change left all elevation angles untouched")
	}
}
