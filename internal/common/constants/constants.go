package constants

import "time"

const (
	EmailMaxLength    = 254
	NicknameMaxLength = 64
	AddressMaxLength  = 255
	PostMaxLength     = 10000

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort          = "8080"
	DefaultPublicBaseURL     = "http://localhost:8080"
	DefaultVerifyRedirectURL = "http://localhost:3000"
	DefaultRequestTimeout    = 5 * time.Second

	DefaultSMTPPort        = 587
	DefaultMailSendTimeout = 10 * time.Second

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerTimeout   = 15 * time.Second
	DefaultCircuitBreakerReset     = 1 * time.Minute

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitSignupRequestsPerSecond  = 0.2
	RateLimitSignupBurst              = 3
	RateLimitVerifyRequestsPerSecond  = 1
	RateLimitVerifyBurst              = 5
	RateLimitGeneralRequestsPerSecond = 20
	RateLimitGeneralBurst             = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	EmailHeader = "EMAIL"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
