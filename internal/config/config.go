package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DevJWTSecret is used when JWT_SECRET is unset outside of prod. Never valid in prod.
const DevJWTSecret = "dev-insecure-secret"

type Config struct {
	Port string

	// DataFile is the path of the JSON document holding all users and posts.
	DataFile string

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireHours is the token lifetime in hours (default 168, seven days). Set via JWT_EXPIRE_HOURS.
	JWTExpireHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
	LogLevel  string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent.
	CORSAllowedOrigins []string

	// AuthRateLimitPerMin caps register/login calls per client IP. Zero disables the limiter.
	AuthRateLimitPerMin int

	MaxBodyBytes int64

	// secretFromEnv records whether JWT_SECRET was supplied rather than defaulted.
	secretFromEnv bool
}

func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	fromEnv := secret != ""
	if !fromEnv {
		secret = DevJWTSecret
	}

	return Config{
		Port:     getEnv("PORT", "4000"),
		DataFile: getEnv("DATA_FILE", "data/db.json"),

		JWTSecret:      secret,
		secretFromEnv:  fromEnv,
		Env:            getEnv("ENV", "dev"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24*7),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		AuthRateLimitPerMin: getEnvIntAllowZero("AUTH_RATE_LIMIT_PER_MIN", 10),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

// Validate reports configuration that must stop the server from starting.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProd() && (!c.secretFromEnv || c.JWTSecret == DevJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// UsingDevSecret is true when the development fallback secret is in effect.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvIntAllowZero(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
