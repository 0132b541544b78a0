package geo

import (
	"math"
	"time"
)

// SolarPosition returns the subsolar point, the geographic latitude and
// longitude [deg] at which the sun is directly overhead at the given
// instant. The solar coordinates follow the NOAA low-accuracy equations,
// good to well under a degree for the years SuperDARN has operated.
func SolarPosition(at time.Time) (lat, lon float64) {
	at = at.UTC()

	// Julian centuries since the J2000 epoch.
	jd := julianDay(at)
	t := (jd - 2451545.0) / 36525.0

	meanLon := math.Mod(280.46646+t*(36000.76983+t*0.0003032), 360.0)
	meanAnom := radians(357.52911 + t*(35999.05029-0.0001537*t))
	eccentricity := 0.016708634 - t*(0.000042037+0.0000001267*t)

	center := math.Sin(meanAnom)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*meanAnom)*(0.019993-0.000101*t) +
		math.Sin(3*meanAnom)*0.000289
	trueLon := meanLon + center

	// Apparent longitude, corrected for nutation and aberration.
	omega := radians(125.04 - 1934.136*t)
	appLon := radians(trueLon - 0.00569 - 0.00478*math.Sin(omega))

	meanObliquity := 23.0 + (26.0+(21.448-t*(46.815+t*(0.00059-t*0.001813)))/60.0)/60.0
	obliquity := radians(meanObliquity + 0.00256*math.Cos(omega))

	declination := math.Asin(math.Sin(obliquity) * math.Sin(appLon))

	// Equation of time [minutes], difference between apparent and mean
	// solar time.
	y := math.Tan(obliquity/2.0) * math.Tan(obliquity/2.0)
	mlRad := radians(meanLon)
	eqTime := 4.0 * degrees(y*math.Sin(2*mlRad)-
		2.0*eccentricity*math.Sin(meanAnom)+
		4.0*eccentricity*y*math.Sin(meanAnom)*math.Cos(2*mlRad)-
		0.5*y*y*math.Sin(4*mlRad)-
		1.25*eccentricity*eccentricity*math.Sin(2*meanAnom))

	minutes := float64(at.Hour())*60.0 + float64(at.Minute()) +
		float64(at.Second())/60.0
	// True solar time at Greenwich, in degrees of rotation from solar noon.
	hourAngle := (minutes+eqTime)/4.0 - 180.0

	return degrees(declination), normalizeLon(-hourAngle)
}

// Antipode returns the point diametrically opposite the given geographic
// position [deg].
func Antipode(lat, lon float64) (float64, float64) {
	return -lat, normalizeLon(lon + 180.0)
}

// AntisolarPoint returns the position [deg] directly opposite the sun,
// the center of the night side of the Earth.
func AntisolarPoint(at time.Time) (lat, lon float64) {
	return Antipode(SolarPosition(at))
}

// Terminator returns the antisolar point [deg] and the great-circle
// radius [km] of the day/night boundary around it, for an ionospheric
// shadow height [km]. At height 0 the radius is a quarter circumference;
// higher layers stay sunlit further onto the night side so the circle
// shrinks.
func Terminator(at time.Time, height float64) (lat, lon, radius float64) {
	lat, lon = AntisolarPoint(at)
	arc := math.Pi/2.0 - math.Acos(Re/(Re+height))
	return lat, lon, Re * arc
}

// julianDay converts a UTC time to a Julian day number, valid for the
// Gregorian calendar.
func julianDay(at time.Time) float64 {
	year := at.Year()
	month := int(at.Month())
	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4
	day := float64(at.Day()) +
		(float64(at.Hour())+float64(at.Minute())/60.0+float64(at.Second())/3600.0)/24.0
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		day + float64(b) - 1524.5
}
