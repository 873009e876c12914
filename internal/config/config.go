package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
)

type Config struct {
	Addr            string
	JWTSecret       string
	TokenTTL        time.Duration
	TokenFile       string
	PageLimit       int
	ShutdownTimeout time.Duration
}

const devSecret = "conduit-dev-secret"

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(log *slog.Logger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug("No .env file found or error loading it, relying on environment variables")
	}

	tokenTTL, err := durationEnv("CONDUIT_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("CONDUIT_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	pageLimit := 10
	if raw := os.Getenv("CONDUIT_PAGE_LIMIT"); raw != "" {
		pageLimit, err = strconv.Atoi(raw)
		if err != nil || pageLimit < 0 {
			return nil, xerrors.Newf("CONDUIT_PAGE_LIMIT must be a non-negative integer, got %q", raw)
		}
	}

	addr := os.Getenv("CONDUIT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	secret := os.Getenv("CONDUIT_JWT_SECRET")
	if secret == "" {
		log.Warn("CONDUIT_JWT_SECRET is not set, using the development secret")
		secret = devSecret
	}

	return &Config{
		Addr:            addr,
		JWTSecret:       secret,
		TokenTTL:        tokenTTL,
		TokenFile:       os.Getenv("CONDUIT_TOKEN_FILE"),
		PageLimit:       pageLimit,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, xerrors.Newf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
