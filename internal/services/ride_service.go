package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"jamride/internal/models"
	"jamride/internal/observability"
	"jamride/internal/repositories/interfaces"
	"jamride/internal/utils"
	"jamride/pkg/geo"
	"jamride/pkg/logger"
)

var ErrRideNotFound = errors.New("ride not found")

type RideService interface {
	// CreateRide publishes a new listing for the authenticated driver. The
	// road distance and per-passenger price are derived server-side from
	// the departure city and the concert's venue city; when the route
	// cannot be resolved the ride is still published without an estimate.
	CreateRide(ctx context.Context, driver models.Identity, request *CreateRideRequest) (*models.Ride, error)

	// ListRides returns all active listings, optionally narrowed by a
	// free-text search over artist, departure and destination.
	ListRides(ctx context.Context, search string) ([]*models.Ride, error)

	// ListMyRides returns the owner's active listings.
	ListMyRides(ctx context.Context, ownerID string) ([]*models.Ride, error)

	// DeleteRide withdraws one of the owner's listings.
	DeleteRide(ctx context.Context, rideID, ownerID string) error

	// GetRide finds one active listing by id.
	GetRide(ctx context.Context, rideID string) (*models.Ride, error)

	// EstimateRoute resolves departure and destination to a road distance
	// and price quote without creating anything.
	EstimateRoute(ctx context.Context, departure, destination string) (*RouteEstimate, error)

	// RunExpirySweeper evicts expired listings on a fixed interval until
	// the context is cancelled. Meant to run on its own goroutine.
	RunExpirySweeper(ctx context.Context, interval time.Duration)
}

type rideService struct {
	rideRepo interfaces.RideRepository
	geo      geo.Provider
	logger   *logger.Logger
}

type CreateRideRequest struct {
	Departure string         `json:"departure" validate:"required"`
	Concert   models.Concert `json:"concert" validate:"required"`
}

type RouteEstimate struct {
	DistanceKm int  `json:"distance_km"`
	Price      int  `json:"price"`
	Priced     bool `json:"priced"`
}

func NewRideService(rideRepo interfaces.RideRepository, geoProvider geo.Provider, log *logger.Logger) RideService {
	return &rideService{
		rideRepo: rideRepo,
		geo:      geoProvider,
		logger:   log,
	}
}

func (s *rideService) CreateRide(ctx context.Context, driver models.Identity, request *CreateRideRequest) (*models.Ride, error) {
	ride := &models.Ride{
		Departure: request.Departure,
		Concert:   request.Concert,
		Driver: models.DriverSnapshot{
			ID:     driver.ID,
			Name:   driver.Name,
			Avatar: driver.Avatar,
			Rating: 5.0,
		},
	}

	estimate, err := s.EstimateRoute(ctx, request.Departure, request.Concert.City)
	if err != nil {
		// The listing is still worth publishing; it just carries no quote.
		s.logger.WithError(err).WithField("departure", request.Departure).
			Warn("Route estimate unavailable, publishing ride without a price")
	} else if estimate.Priced {
		ride.Distance = estimate.DistanceKm
		ride.Price = estimate.Price
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		s.logger.WithError(err).WithUserID(driver.ID).Error("Failed to create ride")
		return nil, err
	}

	observability.RidesPublished.Inc()
	s.logger.WithRideID(ride.ID).WithUserID(driver.ID).Info("Ride created")
	return ride, nil
}

func (s *rideService) ListRides(ctx context.Context, search string) ([]*models.Ride, error) {
	rides, err := s.rideRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return rides, nil
	}

	filtered := make([]*models.Ride, 0, len(rides))
	for _, ride := range rides {
		if rideMatches(ride, search) {
			filtered = append(filtered, ride)
		}
	}
	return filtered, nil
}

// rideMatches checks the search term against the fields a user would scan a
// listing card for: the artist, the departure city and the destination.
func rideMatches(ride *models.Ride, search string) bool {
	for _, field := range []string{
		ride.Concert.Artist,
		ride.Departure,
		ride.Concert.City,
		ride.Concert.Venue,
	} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *rideService) ListMyRides(ctx context.Context, ownerID string) ([]*models.Ride, error) {
	return s.rideRepo.ListActiveForOwner(ctx, ownerID)
}

func (s *rideService) DeleteRide(ctx context.Context, rideID, ownerID string) error {
	if err := s.rideRepo.Delete(ctx, rideID, ownerID); err != nil {
		s.logger.WithError(err).WithRideID(rideID).Error("Failed to delete ride")
		return err
	}
	s.logger.WithRideID(rideID).WithUserID(ownerID).Info("Ride deleted")
	return nil
}

func (s *rideService) GetRide(ctx context.Context, rideID string) (*models.Ride, error) {
	rides, err := s.rideRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, ride := range rides {
		if ride.ID == rideID {
			return ride, nil
		}
	}
	return nil, ErrRideNotFound
}

func (s *rideService) EstimateRoute(ctx context.Context, departure, destination string) (*RouteEstimate, error) {
	origin, err := s.geo.Geocode(ctx, departure)
	if err != nil {
		return nil, err
	}

	dest, err := s.geo.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	distanceKm, err := s.geo.RoadDistanceKm(ctx, *origin, *dest)
	if err != nil {
		return nil, err
	}

	price, priced := utils.EstimatePrice(distanceKm)
	return &RouteEstimate{
		DistanceKm: distanceKm,
		Price:      price,
		Priced:     priced,
	}, nil
}

func (s *rideService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped, err := s.rideRepo.SweepExpired(ctx)
			if err != nil {
				s.logger.WithError(err).Error("Expiry sweep failed")
				continue
			}
			if dropped > 0 {
				observability.RidesExpired.Add(float64(dropped))
				s.logger.WithField("dropped", dropped).Info("Expired rides evicted")
			}
		}
	}
}
