package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestinationPoint_NorthIncreasesLatitudeOnly(t *testing.T) {
	origin := Point{Latitude: 40.0, Longitude: -75.0}

	got := DestinationPoint(origin, 1000, 0)

	assert.Greater(t, got.Latitude, origin.Latitude)
	assert.InDelta(t, origin.Longitude, got.Longitude, 1e-9)
	// 1 km is roughly 0.009 degrees of latitude
	assert.InDelta(t, 0.009, got.Latitude-origin.Latitude, 0.001)
}

func TestDestinationPoint_EastIncreasesLongitude(t *testing.T) {
	origin := Point{Latitude: 40.0, Longitude: -75.0}

	got := DestinationPoint(origin, 1000, 90)

	assert.Greater(t, got.Longitude, origin.Longitude)
	assert.InDelta(t, origin.Latitude, got.Latitude, 1e-6)
}

func TestDestinationPoint_ZeroDistanceIsIdentity(t *testing.T) {
	origin := Point{Latitude: 12.34, Longitude: 56.78}

	got := DestinationPoint(origin, 0, 123)

	assert.InDelta(t, origin.Latitude, got.Latitude, 1e-12)
	assert.InDelta(t, origin.Longitude, got.Longitude, 1e-12)
}

func TestBoundingDeltas_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name   string
		center Point
		radius float64
	}{
		{"zero radius", Point{Latitude: 40, Longitude: -75}, 0},
		{"negative radius", Point{Latitude: 40, Longitude: -75}, -5},
		{"origin sentinel", Point{}, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			latDelta, lngDelta := BoundingDeltas(tc.center, tc.radius)
			assert.Zero(t, latDelta)
			assert.Zero(t, lngDelta)
		})
	}
}

func TestBoundingDeltas_EnclosesCircle(t *testing.T) {
	center := Point{Latitude: 40.0, Longitude: -75.0}

	latDelta, lngDelta := BoundingDeltas(center, 30)

	// 30 m circle: about 0.00054 degrees of latitude span
	assert.InDelta(t, 2*30/earthRadiusMeters*180/math.Pi, latDelta, 1e-5)
	// longitude span widens with latitude
	assert.Greater(t, lngDelta, latDelta)
}

func TestBoundingDeltas_SymmetricUnderBearingNegation(t *testing.T) {
	center := Point{Latitude: 40.0, Longitude: -75.0}
	radius := 100.0

	north := DestinationPoint(center, radius, 0)
	south := DestinationPoint(center, radius, 180)

	assert.InDelta(t, north.Latitude-center.Latitude, center.Latitude-south.Latitude, 1e-9)
}

func TestCircumferencePoints_CardinalLayout(t *testing.T) {
	center := Point{Latitude: 40.0, Longitude: -75.0}

	pts := CircumferencePoints(center, 50)
	north, east, south, west := pts[0], pts[1], pts[2], pts[3]

	assert.Greater(t, north.Latitude, center.Latitude)
	assert.Equal(t, center.Longitude, north.Longitude)

	assert.Less(t, south.Latitude, center.Latitude)
	assert.Equal(t, center.Longitude, south.Longitude)

	assert.Greater(t, east.Longitude, center.Longitude)
	assert.Equal(t, center.Latitude, east.Latitude)

	assert.Less(t, west.Longitude, center.Longitude)
	assert.Equal(t, center.Latitude, west.Latitude)

	// north/south offsets mirror each other
	assert.InDelta(t, north.Latitude-center.Latitude, center.Latitude-south.Latitude, 1e-12)
}

func TestCircumferencePoints_AgreeWithDestinationPoint(t *testing.T) {
	center := Point{Latitude: 40.0, Longitude: -75.0}
	radius := 50.0

	pts := CircumferencePoints(center, radius)
	north := DestinationPoint(center, radius, 0)

	// small-angle approximation should stay close to the exact formula
	assert.InDelta(t, north.Latitude, pts[0].Latitude, 1e-6)
}
