package models

// Geofence is a named circular region used for display and alerting.
// Name is the user-chosen primary key: renaming is a delete plus insert.
type Geofence struct {
	Name      string
	Latitude  float64
	Longitude float64
	// Radius is a positive length in meters, the same unit as event accuracy.
	Radius float64
}
