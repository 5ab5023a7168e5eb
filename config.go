package vexen

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SigningAlgorithm selects the HMAC algorithm used for access tokens.
type SigningAlgorithm string

// Supported signing algorithms.
const (
	AlgorithmHS256 SigningAlgorithm = "HS256"
	AlgorithmHS384 SigningAlgorithm = "HS384"
	AlgorithmHS512 SigningAlgorithm = "HS512"
)

// Default pool and token settings shared by NewConfig and ConfigFromEnv.
const (
	DefaultPoolSize        = 5
	DefaultMaxOverflow     = 10
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Config is the shared configuration consumed by all Vexen subsystems.
// It is plain data: the container only reads it, and each subsystem
// receives a projection with exactly the fields it needs. Construction
// never fails; validation of the connection string and secret belongs
// to the subsystem that uses them.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string shared by all
	// subsystems. Each subsystem opens its own pool from it.
	DatabaseURL string

	// SecretKey signs access tokens.
	SecretKey string

	// Algorithm is the token signing algorithm.
	Algorithm SigningAlgorithm

	// Echo enables SQL statement logging on subsystem pools.
	Echo bool

	// PoolSize is the number of idle connections kept per subsystem pool.
	PoolSize int

	// MaxOverflow is the number of connections a pool may open beyond
	// PoolSize under load.
	MaxOverflow int

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// NewConfig builds a Config with defaults applied, taking only the two
// mandatory values.
func NewConfig(databaseURL, secretKey string) Config {
	return Config{
		DatabaseURL:     databaseURL,
		SecretKey:       secretKey,
		Algorithm:       AlgorithmHS256,
		Echo:            false,
		PoolSize:        DefaultPoolSize,
		MaxOverflow:     DefaultMaxOverflow,
		AccessTokenTTL:  DefaultAccessTokenTTL,
		RefreshTokenTTL: DefaultRefreshTokenTTL,
	}
}

// ConfigFromEnv builds a Config from VEXEN_* environment variables.
// Unset or unparseable values fall back to the same defaults as
// NewConfig.
func ConfigFromEnv() Config {
	cfg := NewConfig(os.Getenv("VEXEN_DATABASE_URL"), os.Getenv("VEXEN_SECRET_KEY"))

	if raw := strings.TrimSpace(os.Getenv("VEXEN_ALGORITHM")); raw != "" {
		cfg.Algorithm = SigningAlgorithm(strings.ToUpper(raw))
	}
	cfg.Echo = envBool("VEXEN_SQL_ECHO", cfg.Echo)
	cfg.PoolSize = envInt("VEXEN_POOL_SIZE", cfg.PoolSize)
	cfg.MaxOverflow = envInt("VEXEN_MAX_OVERFLOW", cfg.MaxOverflow)
	cfg.AccessTokenTTL = envDuration("VEXEN_ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)
	cfg.RefreshTokenTTL = envDuration("VEXEN_REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL)
	return cfg
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
