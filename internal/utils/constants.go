package utils

import "time"

// Application Constants
const (
	AppName    = "KumbhSetu"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	PasswordMinLength = 6
	PasswordMaxLength = 128

	// Registration
	QRCodeID          = "Kumbhbharat Registration"
	MinGroupSize      = 1
	MaxGroupSize      = 50
	MinLuggageCount   = 1
	MaxLuggageCount   = 20
	RegistrationWrite = 5 * time.Second // hard deadline on the creation path

	// Crowd analytics
	CrowdWindow            = 60 * time.Minute
	CrowdModerateThreshold = 500  // above this: moderate
	CrowdHighThreshold     = 1000 // above this: high

	// Matching
	MaxCandidateSuggestions = 5
)

// Crowd levels
const (
	CrowdLevelLow      = "low"
	CrowdLevelModerate = "moderate"
	CrowdLevelHigh     = "high"
)

// Notification event names pushed to connected staff clients.
const (
	EventSOSAlert     = "sos-alert"
	EventEmergency    = "emergency-notification"
	EventCrowdUpdate  = "crowd-update"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgUserExists         = "user already exists with this email"
	ErrMsgInvalidToken       = "invalid token"
	ErrMsgInternalServer     = "internal server error"
	ErrMsgValidationFailed   = "validation failed"
	ErrMsgAccountDeactivated = "user account is deactivated"
)

// Cache Keys
const (
	CacheKeySOSPrefix    = "sos:"
	CacheKeyUserPrefix   = "user:"
	CacheKeyReportPrefix = "report:"
	CacheKeyCrowdPrefix  = "crowd:"
	CacheCrowdTTL        = 10 * time.Second
	CacheEntityTTL       = 5 * time.Minute
)
