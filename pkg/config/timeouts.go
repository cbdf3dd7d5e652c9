package config

import (
	"os"
	"strconv"
	"time"
)

// TimeoutConfig holds all configurable timeout values for service calls
type TimeoutConfig struct {
	// InitialWait is how long a tool call waits before giving up on the
	// outstanding prediction
	InitialWait time.Duration

	// PollInterval is how often to check prediction status
	PollInterval time.Duration
}

// DefaultTimeouts returns the default timeout configuration
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		InitialWait:  60 * time.Second,
		PollInterval: 2 * time.Second,
	}
}

// LoadTimeouts loads timeout configuration from environment variables
func LoadTimeouts() TimeoutConfig {
	config := DefaultTimeouts()

	if val := os.Getenv("PHOTO_STUDIO_INITIAL_WAIT"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
			config.InitialWait = time.Duration(seconds) * time.Second
		}
	}

	if val := os.Getenv("PHOTO_STUDIO_POLL_INTERVAL"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
			config.PollInterval = time.Duration(seconds) * time.Second
		}
	}

	return config
}

// TestTimeouts returns timeout configuration suitable for testing
func TestTimeouts() TimeoutConfig {
	return TimeoutConfig{
		InitialWait:  2 * time.Second,
		PollInterval: 100 * time.Millisecond,
	}
}
