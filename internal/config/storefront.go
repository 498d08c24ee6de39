package config

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultStorefrontURL is the storefront entry page
const DefaultStorefrontURL = "https://casadoconstrutor.com.br/pt-br"

// StorefrontConfig holds configuration for the acceptance runs
type StorefrontConfig struct {
	URL               string
	WaitTimeout       time.Duration
	ScreenshotTimeout time.Duration
	EvidenceDir       string
	LogDir            string
	Browser           string
	Headless          bool
	SlowMo            time.Duration
	Parallel          int
}

// LoadStorefrontConfig loads storefront configuration from environment variables
func LoadStorefrontConfig(getenv func(string) string) (*StorefrontConfig, error) {
	config := &StorefrontConfig{
		URL:               getenv("STOREFRONT_URL"),
		WaitTimeout:       10 * time.Second,
		ScreenshotTimeout: 15 * time.Second,
		EvidenceDir:       getenv("EVIDENCE_DIR"),
		LogDir:            getenv("LOG_DIR"),
		Browser:           getenv("BROWSER"),
		Headless:          true,
		Parallel:          1,
	}

	if config.URL == "" {
		config.URL = DefaultStorefrontURL
	}
	if config.EvidenceDir == "" {
		config.EvidenceDir = "evidencias"
	}
	if config.LogDir == "" {
		config.LogDir = "logs"
	}
	if config.Browser == "" {
		config.Browser = "chromium"
	}

	var err error
	if config.WaitTimeout, err = durationEnv(getenv, "STOREFRONT_WAIT_TIMEOUT", config.WaitTimeout); err != nil {
		return nil, err
	}
	if config.ScreenshotTimeout, err = durationEnv(getenv, "STOREFRONT_SCREENSHOT_TIMEOUT", config.ScreenshotTimeout); err != nil {
		return nil, err
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("SLOW_MO_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SLOW_MO_MS must be a non-negative integer, got %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("STOREFRONT_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("STOREFRONT_PARALLEL must be a positive integer, got %q", v)
		}
		config.Parallel = n
	}

	switch config.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit, got %q", config.Browser)
	}

	return config, nil
}

func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
