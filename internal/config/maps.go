package config

import "time"

type MapsConfig struct {
	Provider   string            `yaml:"provider"` // osm, google
	Timeout    time.Duration     `yaml:"timeout"`
	OSM        *OSMConfig        `yaml:"osm"`
	GoogleMaps *GoogleMapsConfig `yaml:"google_maps"`
}

type OSMConfig struct {
	NominatimURL string `yaml:"nominatim_url"`
	OSRMURL      string `yaml:"osrm_url"`
}

type GoogleMapsConfig struct {
	APIKey string `yaml:"api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "osm"),
		Timeout:  getEnvAsDuration("MAPS_TIMEOUT", 5*time.Second),
		OSM: &OSMConfig{
			NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			OSRMURL:      getEnv("OSRM_URL", "https://router.project-osrm.org"),
		},
		GoogleMaps: &GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
	}
}
