package utils

import "time"

// Application Constants
const (
	AppName    = "JamRide"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "it"
	DefaultCurrency    = "EUR"
	DefaultCountryCode = "IT"
	DefaultTimeZone    = "Europe/Rome"

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Event search
	MinEventKeywordLength = 3
	EventSearchPageSize   = 20
	EventCacheTTL         = 5 * time.Minute

	// Ride lifecycle
	ExpirySweepInterval = time.Hour

	// External calls
	GeoRequestTimeout    = 5 * time.Second
	EventRequestTimeout  = 10 * time.Second
	UpstreamDialTimeout  = 2 * time.Second

	// File upload
	MaxAvatarSize = 5 * 1024 * 1024 // 5MB

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)
