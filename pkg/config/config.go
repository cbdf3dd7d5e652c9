package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the Photo Studio AI MCP server
type Config struct {
	// Required for AI tools
	ReplicateAPIToken string

	// Storage root for committed states, exports and the gallery
	StudioRoot string

	// Optional preset definitions file (TOML). Empty means built-ins plus
	// the default user config location.
	PresetsFile string

	// Optional with defaults
	MaxImageSizeMB   int
	OperationTimeout time.Duration
	DebugMode        bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		MaxImageSizeMB:   5,
		OperationTimeout: 60 * time.Second,
		DebugMode:        false,
	}

	cfg.ReplicateAPIToken = os.Getenv("REPLICATE_API_TOKEN")
	if cfg.ReplicateAPIToken == "" {
		return nil, fmt.Errorf("REPLICATE_API_TOKEN environment variable is required")
	}

	cfg.StudioRoot = os.Getenv("PHOTO_STUDIO_ROOT_FOLDER")
	if cfg.StudioRoot == "" {
		cfg.StudioRoot = "./photo_studio"
	}

	cfg.PresetsFile = os.Getenv("PHOTO_STUDIO_PRESETS")

	if maxSize := os.Getenv("MAX_IMAGE_SIZE_MB"); maxSize != "" {
		val, err := strconv.Atoi(maxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_IMAGE_SIZE_MB: %w", err)
		}
		cfg.MaxImageSizeMB = val
	}

	if timeout := os.Getenv("OPERATION_TIMEOUT_SECONDS"); timeout != "" {
		val, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid OPERATION_TIMEOUT_SECONDS: %w", err)
		}
		cfg.OperationTimeout = time.Duration(val) * time.Second
	}

	if debug := os.Getenv("DEBUG_MODE"); debug != "" {
		val, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_MODE: %w", err)
		}
		cfg.DebugMode = val
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ReplicateAPIToken == "" {
		return fmt.Errorf("Replicate API token is required")
	}
	if c.MaxImageSizeMB <= 0 {
		return fmt.Errorf("max image size must be positive")
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive")
	}

	// Create the studio root folder if it doesn't exist
	if err := os.MkdirAll(c.StudioRoot, 0755); err != nil {
		return fmt.Errorf("failed to create studio root folder: %w", err)
	}

	return nil
}
