package constants

import "time"

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Timeouts
const (
	DefaultTimeout  = 5 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// Token scopes and lifetimes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"

	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Login attempt blocking
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"
)

// Echo context keys
const (
	ContextTokenData = "token_data"
)

// OAuth state lifetime for the Google sign-in flow
const (
	OAuthStateTTL = 10 * time.Minute
)
