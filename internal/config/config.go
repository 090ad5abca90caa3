// Package config loads the intercom service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	envconfig "intercom/pkg/config"
	"intercom/pkg/middleware"
)

const (
	EnvWebhookURL      = "INTERCOM_DISCORD_WEBHOOK_URL"
	EnvRequestSecret   = "INTERCOM_REQUEST_SECRET"
	EnvAuthMode        = "INTERCOM_AUTH_MODE"
	EnvHTTPAddr        = "INTERCOM_HTTP_ADDR"
	EnvMetricsAddr     = "INTERCOM_METRICS_ADDR"
	EnvRateLimitPerMin = "INTERCOM_RATE_LIMIT_PER_MIN"

	DefaultHTTPAddr    = "0.0.0.0:8080"
	DefaultMetricsAddr = "0.0.0.0:8081"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	WebhookURL      string
	RequestSecret   string
	AuthMode        middleware.AuthMode
	HTTPAddr        string
	MetricsAddr     string
	RateLimitPerMin int
}

// Load reads and validates the configuration. Every problem found is
// reported in the returned error.
func Load() (Config, error) {
	cfg := Config{
		WebhookURL:      envconfig.GetEnv(EnvWebhookURL, ""),
		RequestSecret:   os.Getenv(EnvRequestSecret),
		HTTPAddr:        envconfig.GetEnv(EnvHTTPAddr, DefaultHTTPAddr),
		MetricsAddr:     envconfig.GetEnv(EnvMetricsAddr, DefaultMetricsAddr),
		RateLimitPerMin: envconfig.GetEnvInt(EnvRateLimitPerMin, 0),
	}

	var errs []error

	mode, err := middleware.ParseAuthMode(os.Getenv(EnvAuthMode))
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvAuthMode, err))
	}
	cfg.AuthMode = mode

	if cfg.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("%s is required but not set", EnvWebhookURL))
	} else if err := validateWebhookURL(cfg.WebhookURL); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvWebhookURL, err))
	}

	// The secret is compared byte for byte and is not trimmed.
	switch {
	case cfg.RequestSecret == "":
		errs = append(errs, fmt.Errorf("%s is required but not set", EnvRequestSecret))
	case cfg.AuthMode == middleware.AuthModeBody && len(cfg.RequestSecret) > middleware.MaxSecretBodyBytes:
		errs = append(errs, fmt.Errorf("%s must be at most %d bytes in %s auth mode", EnvRequestSecret, middleware.MaxSecretBodyBytes, middleware.AuthModeBody))
	}

	if cfg.HTTPAddr == cfg.MetricsAddr {
		errs = append(errs, fmt.Errorf("%s and %s must differ (both %s)", EnvHTTPAddr, EnvMetricsAddr, cfg.HTTPAddr))
	}

	if cfg.RateLimitPerMin < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", EnvRateLimitPerMin))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
