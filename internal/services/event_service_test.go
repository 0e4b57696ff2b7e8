package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jamride/pkg/events"
	"jamride/pkg/keyvalue"
)

func TestSearchConcertsShortKeyword(t *testing.T) {
	client := events.NewTicketmasterClient("key", "http://127.0.0.1:1", time.Second)
	svc := NewEventService(client, keyvalue.NewMemoryStore(), "IT", 20, time.Minute, testLogger(t))

	for _, keyword := range []string{"", "ab", "  a  "} {
		concerts, err := svc.SearchConcerts(context.Background(), keyword)
		if err != nil {
			t.Fatalf("SearchConcerts(%q): %v", keyword, err)
		}
		if len(concerts) != 0 {
			t.Errorf("SearchConcerts(%q) returned %d concerts, want none without touching the network", keyword, len(concerts))
		}
	}
}

func TestSearchConcertsFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := events.NewTicketmasterClient("key", server.URL, time.Second)
	svc := NewEventService(client, keyvalue.NewMemoryStore(), "IT", 20, time.Minute, testLogger(t))

	concerts, err := svc.SearchConcerts(context.Background(), "radiohead")
	if err != nil {
		t.Fatalf("upstream failure must not surface as an error, got %v", err)
	}
	if len(concerts) != 0 {
		t.Errorf("got %d concerts, want an empty result", len(concerts))
	}
}

func TestSearchConcertsUsesCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"_embedded":{"events":[{"id":"tm-1","name":"Radiohead","dates":{"start":{"localDate":"2099-06-01"}}}]}}`))
	}))
	defer server.Close()

	client := events.NewTicketmasterClient("key", server.URL, time.Second)
	svc := NewEventService(client, keyvalue.NewMemoryStore(), "IT", 20, time.Minute, testLogger(t))

	for i := 0; i < 3; i++ {
		concerts, err := svc.SearchConcerts(context.Background(), "Radiohead")
		if err != nil {
			t.Fatalf("SearchConcerts: %v", err)
		}
		if len(concerts) != 1 || concerts[0].Artist != "Radiohead" {
			t.Fatalf("unexpected result: %+v", concerts)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream called %d times, want 1 (cache miss only)", got)
	}
}
