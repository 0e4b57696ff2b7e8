package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Roma,IT" {
			t.Errorf("query = %q, want Roma,IT", got)
		}
		w.Write([]byte(`[{"lat":"41.8933","lon":"12.4829"}]`))
	}))
	defer server.Close()

	provider := NewNominatimOSRMProvider(server.URL, "", "IT", time.Second)
	coords, err := provider.Geocode(context.Background(), "Roma")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if coords.Latitude != 41.8933 || coords.Longitude != 12.4829 {
		t.Errorf("coords = %+v", coords)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewNominatimOSRMProvider(server.URL, "", "", time.Second)
	if _, err := provider.Geocode(context.Background(), "Atlantide"); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("Geocode returned %v, want ErrPlaceNotFound", err)
	}
}

func TestRoadDistanceKmRoundsMeters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":149712.4}]}`))
	}))
	defer server.Close()

	provider := NewNominatimOSRMProvider("", server.URL, "", time.Second)
	km, err := provider.RoadDistanceKm(context.Background(),
		Coordinates{Latitude: 41.9, Longitude: 12.5},
		Coordinates{Latitude: 45.5, Longitude: 9.2})
	if err != nil {
		t.Fatalf("RoadDistanceKm: %v", err)
	}
	if km != 150 {
		t.Errorf("km = %d, want 150", km)
	}
}

func TestRoadDistanceKmUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	provider := NewNominatimOSRMProvider("", server.URL, "", time.Second)
	if _, err := provider.RoadDistanceKm(context.Background(), Coordinates{}, Coordinates{}); !errors.Is(err, ErrRouteUnavailable) {
		t.Errorf("RoadDistanceKm returned %v, want ErrRouteUnavailable", err)
	}
}
