package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"jamride/internal/config"
	"jamride/internal/handlers"
	"jamride/internal/middleware"
	"jamride/internal/observability"
	repo "jamride/internal/repositories/keyvalue"
	"jamride/internal/services"
	"jamride/internal/utils"
	"jamride/pkg/events"
	"jamride/pkg/geo"
	"jamride/pkg/identity"
	"jamride/pkg/keyvalue"
	"jamride/pkg/logger"
	"jamride/pkg/oauth"
	"jamride/pkg/payment"
	"jamride/pkg/storage"
	ws "jamride/pkg/websocket"
	"jamride/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store := newStore(cfg, appLogger)
	rideRepo := repo.NewRideRepository(store)
	chatRepo := repo.NewChatRepository(store)

	geoProvider := newGeoProvider(cfg, appLogger)
	eventClient := events.NewTicketmasterClient(cfg.Events.APIKey, cfg.Events.BaseURL, cfg.Events.Timeout)

	idProvider, profileUpdater := newIdentityProvider(cfg, appLogger)
	oauthProviders := map[string]oauth.Provider{
		"google":   oauth.NewGoogleProvider(cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret, cfg.OAuth.Google.RedirectURL),
		"facebook": oauth.NewFacebookProvider(cfg.OAuth.Facebook.ClientID, cfg.OAuth.Facebook.ClientSecret, cfg.OAuth.Facebook.RedirectURL),
	}

	wsHandler := ws.NewHandler()

	rideService := services.NewRideService(rideRepo, geoProvider, appLogger)
	chatService := services.NewChatService(chatRepo, rideRepo, wsHandler.GetHub(), appLogger)
	eventService := services.NewEventService(eventClient, store, cfg.Events.CountryCode, cfg.Events.PageSize, cfg.Events.CacheTTL, appLogger)
	authService := services.NewAuthService(idProvider, oauthProviders, cfg.Security.JWTSecret, appLogger)
	paymentService := services.NewPaymentService(chatRepo, payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey), cfg.Payment.Stripe, appLogger)
	profileService := services.NewProfileService(newStorageProvider(cfg, appLogger), profileUpdater, appLogger)

	rideHandler := handlers.NewRideHandler(rideService)
	chatHandler := handlers.NewChatHandler(chatService)
	eventHandler := handlers.NewEventHandler(eventService)
	authHandler := handlers.NewAuthHandler(authService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	profileHandler := handlers.NewProfileHandler(profileService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(observability.GinMiddleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler)
		routes.SetupRideRoutes(v1, rideHandler, cfg.Security.JWTSecret)
		routes.SetupChatRoutes(v1, chatHandler, wsHandler, cfg.Security.JWTSecret)
		routes.SetupEventRoutes(v1, eventHandler)
		routes.SetupPaymentRoutes(v1, paymentHandler, cfg.Security.JWTSecret)
		routes.SetupProfileRoutes(v1, profileHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := store.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go rideService.RunExpirySweeper(sweepCtx, utils.ExpirySweepInterval)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.WithError(err).Fatal("Server stopped")
	}
}

// newStore connects to Redis, falling back to the in-process store so the
// application still runs without one.
func newStore(cfg *config.Config, appLogger *logger.Logger) keyvalue.Store {
	store, err := keyvalue.NewRedisStore(&keyvalue.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, using in-memory store")
		return keyvalue.NewMemoryStore()
	}
	return store
}

func newGeoProvider(cfg *config.Config, appLogger *logger.Logger) geo.Provider {
	if cfg.Maps.Provider == "google" && cfg.Maps.GoogleMaps.APIKey != "" {
		provider, err := geo.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey)
		if err == nil {
			return provider
		}
		appLogger.WithError(err).Warn("Google Maps unavailable, using OSM")
	}
	return geo.NewNominatimOSRMProvider(cfg.Maps.OSM.NominatimURL, cfg.Maps.OSM.OSRMURL, cfg.App.CountryCode, cfg.Maps.Timeout)
}

func newIdentityProvider(cfg *config.Config, appLogger *logger.Logger) (identity.Provider, services.ProfileUpdater) {
	if cfg.Identity.CredentialsFile == "" {
		appLogger.Warn("Identity provider not configured, token login disabled")
		return nil, nil
	}
	provider, err := identity.NewFirebaseProvider(cfg.Identity.CredentialsFile)
	if err != nil {
		appLogger.WithError(err).Warn("Identity provider unavailable, token login disabled")
		return nil, nil
	}
	return provider, provider
}

func newStorageProvider(cfg *config.Config, appLogger *logger.Logger) storage.Provider {
	switch cfg.Storage.Provider {
	case "gcs":
		if provider, err := storage.NewGCSStorage(cfg.Storage.GCS.Bucket, cfg.Storage.GCS.CredentialsFile); err == nil {
			return provider
		} else {
			appLogger.WithError(err).Warn("GCS unavailable, using local storage")
		}
	case "s3":
		if provider, err := storage.NewS3Storage(cfg.Storage.S3.Region, cfg.Storage.S3.Bucket); err == nil {
			return provider
		} else {
			appLogger.WithError(err).Warn("S3 unavailable, using local storage")
		}
	}

	provider, err := storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
	if err != nil {
		appLogger.WithError(err).Fatal("Local storage unavailable")
	}
	return provider
}
