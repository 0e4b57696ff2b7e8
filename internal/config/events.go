package config

import "time"

type EventsConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	CountryCode string        `yaml:"country_code"`
	PageSize    int           `yaml:"page_size"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

func loadEventsConfig() *EventsConfig {
	return &EventsConfig{
		APIKey:      getEnv("TICKETMASTER_API_KEY", ""),
		BaseURL:     getEnv("TICKETMASTER_BASE_URL", "https://app.ticketmaster.com/discovery/v2"),
		CountryCode: getEnv("TICKETMASTER_COUNTRY_CODE", "IT"),
		PageSize:    getEnvAsInt("TICKETMASTER_PAGE_SIZE", 20),
		Timeout:     getEnvAsDuration("TICKETMASTER_TIMEOUT", 10*time.Second),
		CacheTTL:    getEnvAsDuration("TICKETMASTER_CACHE_TTL", 5*time.Minute),
	}
}
