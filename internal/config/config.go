package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Slack configuration
	SlackBotToken string // Required: Slack bot user OAuth token

	// S3 configuration for metadata snapshots
	MetadataBucketName string // Required: S3 bucket holding per-project metadata snapshots

	// Log level
	LogLevel string // Required: Log level

	// BindAddr is the listen address of the HTTP server
	BindAddr string

	// SecurityLevelEmptyByDefault treats subscriptions without a
	// security-level filter as if "security is EMPTY" were configured
	SecurityLevelEmptyByDefault bool
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"SLACK_BOT_TOKEN": &cfg.SlackBotToken,

		"METADATA_BUCKET_NAME": &cfg.MetadataBucketName,

		"LOG_LEVEL": &cfg.LogLevel,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.BindAddr = os.Getenv("BIND_ADDR")
	if cfg.BindAddr == "" {
		cfg.BindAddr = ":8080"
	}
	cfg.SecurityLevelEmptyByDefault = strings.EqualFold(os.Getenv("SECURITY_LEVEL_EMPTY"), "true")

	// Store the instance
	instance = cfg

	return cfg, nil
}
