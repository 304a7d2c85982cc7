// Package config reads the server configuration from NIGHTSLEFT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/nightsleft/internal/rollover"
)

const dataFile = "nightsleft/nightsleft.db"

type Config struct {
	Port           string
	DBPath         string
	Offline        bool
	SeedFile       string
	HorizonYears   int
	HorizonStep    int
	TokenHash      string
	Location       *time.Location
	LogLevel       string
	RolloverSpec   string
	AllowedOrigins []string
	// TrustProxyHeaders is set behind a reverse proxy that overwrites
	// X-Real-IP and X-Forwarded-For.
	TrustProxyHeaders bool
}

// Load reads the configuration through getenv, which is os.Getenv outside
// of tests, and validates it.
func Load(getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{
		Port:         getenv("NIGHTSLEFT_PORT"),
		DBPath:       getenv("NIGHTSLEFT_DB_PATH"),
		SeedFile:     getenv("NIGHTSLEFT_SEED_FILE"),
		TokenHash:    strings.TrimSpace(getenv("NIGHTSLEFT_TOKEN_HASH")),
		LogLevel:     strings.ToLower(strings.TrimSpace(getenv("NIGHTSLEFT_LOG_LEVEL"))),
		RolloverSpec: strings.TrimSpace(getenv("NIGHTSLEFT_ROLLOVER_SCHEDULE")),
		Location:     time.Local,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RolloverSpec == "" {
		cfg.RolloverSpec = rollover.DefaultSpec
	}

	var err error
	if s := getenv("NIGHTSLEFT_OFFLINE"); s != "" {
		if cfg.Offline, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("parse NIGHTSLEFT_OFFLINE: %w", err)
		}
	}
	if s := getenv("NIGHTSLEFT_TRUST_PROXY_HEADERS"); s != "" {
		if cfg.TrustProxyHeaders, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("parse NIGHTSLEFT_TRUST_PROXY_HEADERS: %w", err)
		}
	}
	if cfg.HorizonYears, err = intEnv(getenv, "NIGHTSLEFT_HORIZON_YEARS"); err != nil {
		return nil, err
	}
	if cfg.HorizonStep, err = intEnv(getenv, "NIGHTSLEFT_HORIZON_STEP"); err != nil {
		return nil, err
	}
	if tz := getenv("NIGHTSLEFT_TIMEZONE"); tz != "" {
		if cfg.Location, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", tz, err)
		}
	}
	for _, o := range strings.Split(getenv("NIGHTSLEFT_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.DBPath == "" && !cfg.Offline {
		if cfg.DBPath, err = DefaultDBPath(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values Load could not check while parsing.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if c.HorizonYears < 0 {
		return errors.New("horizon years must not be negative")
	}
	if c.HorizonStep < 0 {
		return errors.New("horizon step must not be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid logging level: %s", c.LogLevel)
	}

	if c.TokenHash != "" {
		if _, err := bcrypt.Cost([]byte(c.TokenHash)); err != nil {
			return fmt.Errorf("token hash is not a bcrypt hash: %w", err)
		}
	}
	return rollover.ValidateSpec(c.RolloverSpec)
}

// DefaultDBPath returns the database file under the XDG data directory,
// creating its parent directory.
func DefaultDBPath() (string, error) {
	path, err := xdg.DataFile(dataFile)
	if err != nil {
		return "", fmt.Errorf("determine database path: %w", err)
	}
	return path, nil
}

func intEnv(getenv func(string) string, key string) (int, error) {
	s := getenv(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
