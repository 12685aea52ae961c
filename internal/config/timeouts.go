package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the operational timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Step              time.Duration // Bound on a single provisioning step on a host
	Allocate          time.Duration // Bound on a VM allocation request
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is
// used.
//
// Environment Variables:
//   - PAASBOOT_TIMEOUT_STEP (default: 5m)
//   - PAASBOOT_TIMEOUT_ALLOCATE (default: 10m)
//   - PAASBOOT_RETRY_MAX_ATTEMPTS (default: 5)
//   - PAASBOOT_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Step:              parseDuration("PAASBOOT_TIMEOUT_STEP", 5*time.Minute),
		Allocate:          parseDuration("PAASBOOT_TIMEOUT_ALLOCATE", 10*time.Minute),
		RetryMaxAttempts:  parseInt("PAASBOOT_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("PAASBOOT_RETRY_INITIAL_DELAY", time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
