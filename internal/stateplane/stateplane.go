// Package stateplane converts between State Plane Lambert Conformal Conic
// coordinates and geographic longitude/latitude.
package stateplane

import "math"

const (
	// FeetToMeters converts the PLUTO xcoord/ycoord feet to metres.
	FeetToMeters = 0.3048

	grs80SemiMajor = 6378137.0
	grs80E2        = 0.00669438002290 // eccentricity squared
)

// Zone describes a two-standard-parallel Lambert Conformal Conic zone on
// the GRS80 ellipsoid. Angles are in degrees, offsets in metres.
type Zone struct {
	Lat1, Lat2    float64 // standard parallels
	Lat0, Lon0    float64 // origin
	FalseEasting  float64
	FalseNorthing float64
}

// NYLongIsland is New York State Plane, Long Island zone (NAD83), the CRS
// of the PLUTO x/y coordinates.
var NYLongIsland = Zone{
	Lat1:          40.66666666666666,
	Lat2:          41.03333333333333,
	Lat0:          40.16666666666666,
	Lon0:          -74,
	FalseEasting:  300000,
	FalseNorthing: 0,
}

// Projection holds the derived constants for a zone.
type Projection struct {
	zone Zone
	e    float64
	n    float64
	aF   float64 // semi-major axis times F
	rho0 float64
}

// New derives the projection constants for z.
func New(z Zone) *Projection {
	e := math.Sqrt(grs80E2)
	phi0 := radians(z.Lat0)
	phi1 := radians(z.Lat1)
	phi2 := radians(z.Lat2)

	m1 := mFunc(phi1)
	m2 := mFunc(phi2)
	t0 := tFunc(phi0, e)
	t1 := tFunc(phi1, e)
	t2 := tFunc(phi2, e)

	n := math.Log(m1/m2) / math.Log(t1/t2)
	aF := grs80SemiMajor * m1 / (n * math.Pow(t1, n))

	return &Projection{
		zone: z,
		e:    e,
		n:    n,
		aF:   aF,
		rho0: aF * math.Pow(t0, n),
	}
}

// FromLonLat projects geographic degrees to easting/northing in metres.
func (p *Projection) FromLonLat(lon, lat float64) (x, y float64) {
	t := tFunc(radians(lat), p.e)
	rho := p.aF * math.Pow(t, p.n)
	theta := p.n * (radians(lon) - radians(p.zone.Lon0))

	x = rho*math.Sin(theta) + p.zone.FalseEasting
	y = p.rho0 - rho*math.Cos(theta) + p.zone.FalseNorthing
	return x, y
}

// ToLonLat inverts easting/northing in metres to geographic degrees.
func (p *Projection) ToLonLat(x, y float64) (lon, lat float64) {
	dx := x - p.zone.FalseEasting
	dy := p.rho0 - (y - p.zone.FalseNorthing)

	rho := math.Copysign(math.Hypot(dx, dy), p.n)
	theta := math.Atan2(dx, dy)
	if p.n < 0 {
		theta = math.Atan2(-dx, -dy)
	}

	t := math.Pow(rho/p.aF, 1/p.n)
	lambda := theta/p.n + radians(p.zone.Lon0)

	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 15; i++ {
		es := p.e * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), p.e/2))
		if math.Abs(next-phi) < 1e-12 {
			phi = next
			break
		}
		phi = next
	}

	return degrees(lambda), degrees(phi)
}

// FeetToLonLat converts State Plane feet to longitude/latitude.
func (p *Projection) FeetToLonLat(xFt, yFt float64) (lon, lat float64) {
	return p.ToLonLat(xFt*FeetToMeters, yFt*FeetToMeters)
}

func mFunc(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-grs80E2*s*s)
}

func tFunc(phi, e float64) float64 {
	es := e * math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-es)/(1+es), e/2)
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
