package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const searchResponse = `{
  "_embedded": {
    "events": [
      {
        "id": "tm-1",
        "name": "Radiohead",
        "url": "https://tickets.example/tm-1",
        "images": [
          {"ratio": "3_2", "url": "https://img.example/a.jpg"},
          {"ratio": "16_9", "url": "https://img.example/wide.jpg"}
        ],
        "dates": {"start": {"localDate": "2099-06-01", "localTime": "21:00:00"}},
        "priceRanges": [{"min": 49.5, "max": 120.2}],
        "_embedded": {
          "venues": [{"name": "Ippodromo", "city": {"name": "Milano"}}]
        }
      },
      {
        "id": "tm-2",
        "name": "Secret Show",
        "dates": {"start": {"localDate": "2099-07-01"}}
      }
    ]
  }
}`

func TestSearchEventsMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("keyword") != "radiohead" {
			t.Errorf("keyword = %q", q.Get("keyword"))
		}
		if q.Get("countryCode") != "IT" {
			t.Errorf("countryCode = %q", q.Get("countryCode"))
		}
		if q.Get("classificationName") != "music" {
			t.Errorf("classificationName = %q", q.Get("classificationName"))
		}
		w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	client := NewTicketmasterClient("test-key", server.URL, time.Second)
	events, err := client.SearchEvents(context.Background(), "radiohead", "IT", 20)
	if err != nil {
		t.Fatalf("SearchEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	full := events[0]
	if full.Artist != "Radiohead" || full.Venue != "Ippodromo" || full.City != "Milano" {
		t.Errorf("event = %+v", full)
	}
	if full.Date != "2099-06-01" || full.Time != "21:00" {
		t.Errorf("date/time = %q %q", full.Date, full.Time)
	}
	if full.Image != "https://img.example/wide.jpg" {
		t.Errorf("image = %q, want the 16:9 crop", full.Image)
	}
	if full.PriceRange != "49€ - 121€" {
		t.Errorf("price range = %q", full.PriceRange)
	}

	sparse := events[1]
	if sparse.Venue != "Venue TBA" || sparse.City != "City TBA" {
		t.Errorf("missing venue should fall back to TBA, got %+v", sparse)
	}
	if sparse.Time != "Orario TBA" || sparse.PriceRange != "Prezzo TBA" {
		t.Errorf("missing time/price should fall back to TBA, got %+v", sparse)
	}
}

func TestSearchEventsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTicketmasterClient("test-key", server.URL, time.Second)
	if _, err := client.SearchEvents(context.Background(), "radiohead", "IT", 20); err == nil {
		t.Fatal("expected an error on a non-200 response")
	}
}

func TestGetEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/tm-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":"tm-1","name":"Radiohead","dates":{"start":{"localDate":"2099-06-01"}}}`))
	}))
	defer server.Close()

	client := NewTicketmasterClient("test-key", server.URL, time.Second)
	event, err := client.GetEvent(context.Background(), "tm-1")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if event.ID != "tm-1" || event.Artist != "Radiohead" {
		t.Errorf("event = %+v", event)
	}
}
