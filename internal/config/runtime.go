package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "kayexpress.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultPaymentWindow  = "2h"
	defaultQuoteWindow    = "1h"
	defaultQuoteMax       = "10"
	defaultGatewayMode    = "simulation"
	defaultGatewaySecret  = "change-me-gateway-secret"
	defaultSMTPPort       = "587"
	defaultNotifyDisabled = "true"
)

// RuntimeConfig holds everything main reads from the environment.
type RuntimeConfig struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// BookingPaymentWindow is how long a pending booking holds its
	// seats before it can be expired.
	BookingPaymentWindow time.Duration

	QuoteThrottleWindow time.Duration
	QuoteThrottleMax    int

	GatewayBaseURL string
	GatewaySecret  string
	GatewayMode    string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	EmailFrom     string
	NotifyDisable bool

	CORSOrigins []string
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.BookingPaymentWindow, err = parseDurationEnv("BOOKING_PAYMENT_WINDOW", defaultPaymentWindow)
	if err != nil {
		return nil, err
	}

	cfg.QuoteThrottleWindow, err = parseDurationEnv("QUOTE_THROTTLE_WINDOW", defaultQuoteWindow)
	if err != nil {
		return nil, err
	}

	cfg.QuoteThrottleMax, err = parseIntEnv("QUOTE_THROTTLE_MAX", defaultQuoteMax)
	if err != nil {
		return nil, err
	}

	cfg.GatewayBaseURL = strings.TrimSpace(getEnv("PAYMENT_GATEWAY_URL", ""))
	cfg.GatewaySecret = strings.TrimSpace(getEnv("PAYMENT_GATEWAY_SECRET", defaultGatewaySecret))
	cfg.GatewayMode = strings.ToLower(strings.TrimSpace(getEnv("PAYMENT_GATEWAY_MODE", defaultGatewayMode)))

	cfg.SMTPHost = strings.TrimSpace(getEnv("SMTP_HOST", ""))
	cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", defaultSMTPPort)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUser = strings.TrimSpace(getEnv("SMTP_USER", ""))
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.EmailFrom = strings.TrimSpace(getEnv("EMAIL_FROM", "no-reply@kayexpress.com"))
	cfg.NotifyDisable = parseBoolEnv("NOTIFY_DISABLE", defaultNotifyDisabled)

	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateRuntimeConfig(cfg *RuntimeConfig) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.BookingPaymentWindow <= 0 {
		return fmt.Errorf("BOOKING_PAYMENT_WINDOW must be > 0")
	}
	if cfg.QuoteThrottleWindow <= 0 {
		return fmt.Errorf("QUOTE_THROTTLE_WINDOW must be > 0")
	}
	if cfg.QuoteThrottleMax <= 0 {
		return fmt.Errorf("QUOTE_THROTTLE_MAX must be > 0")
	}
	if cfg.GatewayMode != "simulation" && cfg.GatewayMode != "live" {
		return fmt.Errorf("PAYMENT_GATEWAY_MODE must be one of: simulation, live")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.GatewaySecret, defaultGatewaySecret) {
			return fmt.Errorf("in prod/release PAYMENT_GATEWAY_SECRET must be set and not default")
		}
		if cfg.GatewayMode == "live" && cfg.GatewayBaseURL == "" {
			return fmt.Errorf("in prod/release PAYMENT_GATEWAY_URL must be set when mode is live")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
