package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	APIBaseURL            string `yaml:"apiBaseURL"`
	LogLevel              string `yaml:"logLevel"`
	DataDir               string `yaml:"dataDir"`
	PrefsPath             string `yaml:"prefsPath"`
	RedisAddr             string `yaml:"redisAddr"`
	RedisPassword         string `yaml:"redisPassword"`
	StripePublishableKey  string `yaml:"stripePublishableKey"`
	StripePaymentMethod   string `yaml:"stripePaymentMethod"`
	PollInterval          string `yaml:"pollInterval"`
	PollCompletionGrace   string `yaml:"pollCompletionGrace"`
	DefaultDownloadFormat string `yaml:"defaultDownloadFormat"`
}

// Load reads config from path (defaults to config.yaml), applying env
// overrides on top of the file values.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("BOOKFORGE_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_DATA_DIR"); v != "" {
		cfg.DataDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_PREFS_PATH"); v != "" {
		cfg.PrefsPath = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("STRIPE_PUBLISHABLE_KEY"); v != "" {
		cfg.StripePublishableKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_STRIPE_PAYMENT_METHOD"); v != "" {
		cfg.StripePaymentMethod = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_POLL_INTERVAL"); v != "" {
		cfg.PollInterval = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFORGE_POLL_COMPLETION_GRACE"); v != "" {
		cfg.PollCompletionGrace = strings.TrimSpace(v)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return errors.New("config: apiBaseURL is required (set in config.yaml or BOOKFORGE_API_BASE_URL)")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("config: dataDir is required (set in config.yaml)")
	}
	if strings.TrimSpace(cfg.PrefsPath) == "" && strings.TrimSpace(cfg.RedisAddr) == "" {
		return errors.New("config: prefsPath or redisAddr is required for the preference store")
	}
	if _, err := ParsePollInterval(cfg.PollInterval); err != nil {
		return err
	}
	if _, err := ParseCompletionGrace(cfg.PollCompletionGrace); err != nil {
		return err
	}
	switch cfg.DefaultDownloadFormat {
	case "", "pdf", "docx", "epub":
	default:
		return errors.New("config: defaultDownloadFormat must be pdf, docx or epub")
	}
	return nil
}

// ParsePollInterval parses the optional status poll interval, defaulting to
// the 3 second cadence the status screen uses.
func ParsePollInterval(s string) (time.Duration, error) {
	if s == "" {
		return 3 * time.Second, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pollInterval duration: %w", err)
	}
	if dur <= 0 {
		return 0, errors.New("config: pollInterval must be positive")
	}
	return dur, nil
}

// ParseCompletionGrace parses the optional delay between a complete status
// and navigation to the download screen. Defaults to 1.5 seconds.
func ParseCompletionGrace(s string) (time.Duration, error) {
	if s == "" {
		return 1500 * time.Millisecond, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pollCompletionGrace duration: %w", err)
	}
	if dur < 0 {
		return 0, errors.New("config: pollCompletionGrace must not be negative")
	}
	return dur, nil
}
