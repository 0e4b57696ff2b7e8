package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultOSRMURL      = "https://router.project-osrm.org"
)

// NominatimOSRMProvider resolves place names through Nominatim and road
// distances through an OSRM routing server. This is the default provider:
// both services are free and need no API key.
type NominatimOSRMProvider struct {
	nominatimURL string
	osrmURL      string
	country      string
	httpClient   *http.Client
}

func NewNominatimOSRMProvider(nominatimURL, osrmURL, country string, timeout time.Duration) *NominatimOSRMProvider {
	if nominatimURL == "" {
		nominatimURL = defaultNominatimURL
	}
	if osrmURL == "" {
		osrmURL = defaultOSRMURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &NominatimOSRMProvider{
		nominatimURL: nominatimURL,
		osrmURL:      osrmURL,
		country:      country,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (p *NominatimOSRMProvider) Geocode(ctx context.Context, place string) (*Coordinates, error) {
	query := place
	if p.country != "" {
		query = place + "," + p.country
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", p.nominatimURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed: status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

func (p *NominatimOSRMProvider) RoadDistanceKm(ctx context.Context, origin, destination Coordinates) (int, error) {
	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		p.osrmURL, origin.Longitude, origin.Latitude, destination.Longitude, destination.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // meters
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if out.Code != "Ok" || len(out.Routes) == 0 {
		return 0, ErrRouteUnavailable
	}

	return int(math.Round(out.Routes[0].Distance / 1000)), nil
}
