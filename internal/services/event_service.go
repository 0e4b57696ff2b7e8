package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"jamride/internal/models"
	"jamride/internal/utils"
	"jamride/pkg/events"
	"jamride/pkg/keyvalue"
	"jamride/pkg/logger"
)

const eventCachePrefix = "eventSearch_"

type EventService interface {
	// SearchConcerts looks up upcoming music events matching the keyword.
	// Keywords shorter than the minimum length and upstream failures both
	// resolve to an empty result, never an error surfaced to the caller.
	SearchConcerts(ctx context.Context, keyword string) ([]models.Concert, error)

	// GetConcert fetches one event by its provider id.
	GetConcert(ctx context.Context, eventID string) (*models.Concert, error)
}

type eventService struct {
	client      *events.TicketmasterClient
	cache       keyvalue.Store
	countryCode string
	pageSize    int
	cacheTTL    time.Duration
	logger      *logger.Logger
}

func NewEventService(client *events.TicketmasterClient, cache keyvalue.Store, countryCode string, pageSize int, cacheTTL time.Duration, log *logger.Logger) EventService {
	return &eventService{
		client:      client,
		cache:       cache,
		countryCode: countryCode,
		pageSize:    pageSize,
		cacheTTL:    cacheTTL,
		logger:      log,
	}
}

func (s *eventService) SearchConcerts(ctx context.Context, keyword string) ([]models.Concert, error) {
	keyword = strings.TrimSpace(keyword)
	if len(keyword) < utils.MinEventKeywordLength {
		return []models.Concert{}, nil
	}

	cacheKey := eventCachePrefix + strings.ToLower(keyword)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var concerts []models.Concert
		if err := json.Unmarshal([]byte(cached), &concerts); err == nil {
			return concerts, nil
		}
	}

	found, err := s.client.SearchEvents(ctx, keyword, s.countryCode, s.pageSize)
	if err != nil {
		// The search box degrades to "no results" rather than an error page.
		s.logger.WithError(err).WithField("keyword", keyword).Warn("Event search failed")
		return []models.Concert{}, nil
	}

	concerts := make([]models.Concert, 0, len(found))
	for _, event := range found {
		concerts = append(concerts, toConcert(event))
	}

	if payload, err := json.Marshal(concerts); err == nil {
		if err := s.cache.SetTTL(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
			s.logger.WithError(err).Debug("Event cache write failed")
		}
	}

	return concerts, nil
}

func (s *eventService) GetConcert(ctx context.Context, eventID string) (*models.Concert, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	concert := toConcert(*event)
	return &concert, nil
}

func toConcert(event events.Event) models.Concert {
	return models.Concert{
		ID:         event.ID,
		Artist:     event.Artist,
		Venue:      event.Venue,
		City:       event.City,
		Date:       event.Date,
		Time:       event.Time,
		Image:      event.Image,
		PriceRange: event.PriceRange,
		URL:        event.URL,
	}
}
