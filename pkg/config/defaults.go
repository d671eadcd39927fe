package config

import "time"

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultDotEnv    = ".env"

	DefaultCountry = "US"

	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxRequestSize = 16 * 1024 // 16KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// The contact page shows its thank-you panel for this long before the form clears.
	DefaultFormResetDelay = 3 * time.Second

	DefaultCountryPageLimit = 300
)
