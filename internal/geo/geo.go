// Package geo holds pure geometry helpers for translating a center+radius
// geofence into map deltas and sampled circle points. The math targets
// coarse camera fitting, not precise geodesy.
package geo

import "math"

// earthRadiusMeters is the equatorial radius used by the circle
// approximations.
const earthRadiusMeters = 6378100.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DestinationPoint returns the point reached by travelling distanceMeters
// from origin along the given initial bearing (degrees clockwise from
// north), using the standard great-circle destination formula.
func DestinationPoint(origin Point, distanceMeters, bearingDeg float64) Point {
	delta := distanceMeters / earthRadiusMeters
	theta := toRadians(bearingDeg)
	phi1 := toRadians(origin.Latitude)
	lambda1 := toRadians(origin.Longitude)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	return Point{
		Latitude:  toDegrees(phi2),
		Longitude: toDegrees(lambda2),
	}
}

// BoundingDeltas computes the latitude/longitude span of the smallest
// axis-aligned box enclosing a circle of radiusMeters centered at center,
// by projecting the destination point at bearings 0/180/90/270 and taking
// absolute differences.
//
// Degenerate input (radius <= 0, or center at the {0,0} origin sentinel)
// yields zero deltas; callers must not render a region in that case.
func BoundingDeltas(center Point, radiusMeters float64) (latDelta, lngDelta float64) {
	if radiusMeters <= 0 || (center.Latitude == 0 && center.Longitude == 0) {
		return 0, 0
	}

	north := DestinationPoint(center, radiusMeters, 0)
	south := DestinationPoint(center, radiusMeters, 180)
	east := DestinationPoint(center, radiusMeters, 90)
	west := DestinationPoint(center, radiusMeters, 270)

	return math.Abs(north.Latitude - south.Latitude), math.Abs(east.Longitude - west.Longitude)
}

// CircumferencePoints approximates the four cardinal points on the circle
// of radiusMeters around center, in north, east, south, west order. It uses
// a spherical small-angle approximation; callers must not rely on sub-meter
// accuracy.
func CircumferencePoints(center Point, radiusMeters float64) [4]Point {
	latOffset := toDegrees(radiusMeters / earthRadiusMeters)
	lngOffset := latOffset / math.Cos(toRadians(center.Latitude))

	return [4]Point{
		{Latitude: center.Latitude + latOffset, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude + lngOffset},
		{Latitude: center.Latitude - latOffset, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude - lngOffset},
	}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
