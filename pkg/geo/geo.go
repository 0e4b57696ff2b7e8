package geo

import (
	"context"
	"errors"
)

var (
	// ErrPlaceNotFound means the geocoder had no match for the place name.
	ErrPlaceNotFound = errors.New("geo: place not found")

	// ErrRouteUnavailable means the routing service produced no usable
	// road distance for the city pair.
	ErrRouteUnavailable = errors.New("geo: route unavailable")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider resolves free-text place names to coordinates and city pairs to
// road distances. Both stages fail closed: a lookup that cannot be served
// returns a sentinel error, never a partial or negative value.
type Provider interface {
	Geocode(ctx context.Context, place string) (*Coordinates, error)
	RoadDistanceKm(ctx context.Context, origin, destination Coordinates) (int, error)
}
