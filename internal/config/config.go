package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultDatabaseURL   = "housing.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultSessionTTL    = "15m"
	defaultPollInterval  = "5s"
	defaultPollAttempts  = 60
	defaultBakongBaseURL = "https://api-bakong.nbc.gov.kh"
	defaultMerchantName  = "Housing Analyzer"
	defaultMerchantCity  = "Phnom Penh"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// KHQR / Bakong gateway.
	BakongBaseURL      string
	BakongAPIToken     string
	BakongBankAccount  string
	BakongMerchantName string
	BakongMerchantCity string
	BakongPhoneNumber  string

	// Payment session lifetime and poll bounds.
	PaymentSessionTTL time.Duration
	PollInterval      time.Duration
	PollMaxAttempts   int
}

func Load() (*Config, error) {
	// Missing .env is fine in production where env vars are injected.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, relying on environment")
	}

	cfg := &Config{
		AppEnv:             strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:               getEnv("PORT", defaultPort),
		DatabaseURL:        getEnv("DATABASE_URL", defaultDatabaseURL),
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		BakongBaseURL:      getEnv("BAKONG_BASE_URL", defaultBakongBaseURL),
		BakongAPIToken:     os.Getenv("BAKONG_API_TOKEN"),
		BakongBankAccount:  os.Getenv("BAKONG_BANK_ACCOUNT"),
		BakongMerchantName: getEnv("BAKONG_MERCHANT_NAME", defaultMerchantName),
		BakongMerchantCity: getEnv("BAKONG_MERCHANT_CITY", defaultMerchantCity),
		BakongPhoneNumber:  os.Getenv("BAKONG_PHONE_NUMBER"),
		PollMaxAttempts:    defaultPollAttempts,
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.PaymentSessionTTL, err = parseDurationEnv("PAYMENT_SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval, err = parseDurationEnv("PAYMENT_POLL_INTERVAL", defaultPollInterval)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if cfg.AppEnv != "dev" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set outside dev")
	}

	log.Printf("config loaded: env=%s port=%s poll_interval=%s poll_max_attempts=%d",
		cfg.AppEnv, cfg.Port, cfg.PollInterval, cfg.PollMaxAttempts)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.PaymentSessionTTL <= 0 {
		return fmt.Errorf("PAYMENT_SESSION_TTL must be > 0")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("PAYMENT_POLL_INTERVAL must be > 0")
	}
	return nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}
