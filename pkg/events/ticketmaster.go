package events

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// Event is one concert as returned by the discovery API, flattened to the
// fields the application renders. Missing venue, time or price data is
// substituted with "TBA" labels rather than omitted.
type Event struct {
	ID         string `json:"id"`
	Artist     string `json:"artist"`
	Venue      string `json:"venue"`
	City       string `json:"city"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"`
	Image      string `json:"image"`
	PriceRange string `json:"price"`
	URL        string `json:"url"`
}

// TicketmasterClient queries the Ticketmaster Discovery v2 API for music
// events. All lookups are read-only and carry the configured timeout.
type TicketmasterClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTicketmasterClient(apiKey, baseURL string, timeout time.Duration) *TicketmasterClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TicketmasterClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchEvents returns up to size music events matching the keyword in the
// given country. The caller enforces the minimum keyword length; transport
// and decoding problems surface as errors for the service layer to swallow.
func (c *TicketmasterClient) SearchEvents(ctx context.Context, keyword, countryCode string, size int) ([]Event, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("keyword", keyword)
	params.Set("countryCode", countryCode)
	params.Set("classificationName", "music")
	params.Set("size", fmt.Sprintf("%d", size))
	params.Set("locale", "*")

	endpoint := fmt.Sprintf("%s/events.json?%s", c.baseURL, params.Encode())

	var payload eventsPayload
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(payload.Embedded.Events))
	for _, raw := range payload.Embedded.Events {
		events = append(events, raw.toEvent())
	}
	return events, nil
}

// GetEvent fetches a single event by its discovery id.
func (c *TicketmasterClient) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("locale", "*")

	endpoint := fmt.Sprintf("%s/events/%s?%s", c.baseURL, url.PathEscape(eventID), params.Encode())

	var raw rawEvent
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	event := raw.toEvent()
	return &event, nil
}

func (c *TicketmasterClient) get(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("event search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event search request failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode event search response: %w", err)
	}
	return nil
}

type eventsPayload struct {
	Embedded struct {
		Events []rawEvent `json:"events"`
	} `json:"_embedded"`
}

type rawEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Images []struct {
		Ratio string `json:"ratio"`
		URL   string `json:"url"`
	} `json:"images"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRanges"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (e rawEvent) toEvent() Event {
	event := Event{
		ID:         e.ID,
		Artist:     e.Name,
		Venue:      "Venue TBA",
		City:       "City TBA",
		Date:       e.Dates.Start.LocalDate,
		Time:       "Orario TBA",
		PriceRange: "Prezzo TBA",
		URL:        e.URL,
	}

	if len(e.Embedded.Venues) > 0 {
		if name := e.Embedded.Venues[0].Name; name != "" {
			event.Venue = name
		}
		if city := e.Embedded.Venues[0].City.Name; city != "" {
			event.City = city
		}
	}

	if e.Dates.Start.LocalTime != "" {
		if t, err := time.Parse("15:04:05", e.Dates.Start.LocalTime); err == nil {
			event.Time = t.Format("15:04")
		}
	}

	// Prefer the 16:9 crop; fall back to whatever image comes first.
	for _, img := range e.Images {
		if img.Ratio == "16_9" {
			event.Image = img.URL
			break
		}
	}
	if event.Image == "" && len(e.Images) > 0 {
		event.Image = e.Images[0].URL
	}

	if len(e.PriceRanges) > 0 {
		event.PriceRange = fmt.Sprintf("%d€ - %d€",
			int(math.Floor(e.PriceRanges[0].Min)), int(math.Ceil(e.PriceRanges[0].Max)))
	}

	return event
}
