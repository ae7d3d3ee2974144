package stateplane

import (
	"math"
	"testing"
)

func TestOriginMapsToFalseOffsets(t *testing.T) {
	p := New(NYLongIsland)

	x, y := p.FromLonLat(NYLongIsland.Lon0, NYLongIsland.Lat0)
	if math.Abs(x-NYLongIsland.FalseEasting) > 1e-6 {
		t.Errorf("x = %f, want %f", x, NYLongIsland.FalseEasting)
	}
	if math.Abs(y-NYLongIsland.FalseNorthing) > 1e-6 {
		t.Errorf("y = %f, want %f", y, NYLongIsland.FalseNorthing)
	}
}

func TestRoundTrip(t *testing.T) {
	p := New(NYLongIsland)

	tests := []struct {
		name     string
		lon, lat float64
	}{
		{"midtown", -73.9857, 40.7484},
		{"staten island", -74.1502, 40.5795},
		{"far rockaway", -73.7554, 40.6054},
		{"bronx", -73.8648, 40.8448},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := p.FromLonLat(tt.lon, tt.lat)
			lon, lat := p.ToLonLat(x, y)
			if math.Abs(lon-tt.lon) > 1e-9 || math.Abs(lat-tt.lat) > 1e-9 {
				t.Errorf("round trip = (%f, %f), want (%f, %f)", lon, lat, tt.lon, tt.lat)
			}
		})
	}
}

func TestFeetToLonLatLandsInCity(t *testing.T) {
	p := New(NYLongIsland)

	// Typical PLUTO coordinates for a Manhattan lot.
	lon, lat := p.FeetToLonLat(988000, 212000)
	if lon < -74.29 || lon > -73.69 {
		t.Errorf("lon = %f, outside city bounds", lon)
	}
	if lat < 40.49 || lat > 40.92 {
		t.Errorf("lat = %f, outside city bounds", lat)
	}
}
