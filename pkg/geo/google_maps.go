package geo

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"
)

// GoogleMapsProvider serves the same lookups through the Google Maps APIs
// for deployments that prefer them over the free OSM stack.
type GoogleMapsProvider struct {
	client *maps.Client
}

func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{client: client}, nil
}

func (g *GoogleMapsProvider) Geocode(ctx context.Context, place string) (*Coordinates, error) {
	req := &maps.GeocodingRequest{
		Address: place,
	}

	resp, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(resp) == 0 {
		return nil, ErrPlaceNotFound
	}

	return &Coordinates{
		Latitude:  resp[0].Geometry.Location.Lat,
		Longitude: resp[0].Geometry.Location.Lng,
	}, nil
}

func (g *GoogleMapsProvider) RoadDistanceKm(ctx context.Context, origin, destination Coordinates) (int, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude),
		Destination: fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, ErrRouteUnavailable
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}

	return int(math.Round(float64(meters) / 1000)), nil
}
