package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	clearTimeoutEnvVars(t)

	timeouts := LoadTimeouts()

	if timeouts.Step != 5*time.Minute {
		t.Errorf("Expected Step default 5m, got %v", timeouts.Step)
	}
	if timeouts.Allocate != 10*time.Minute {
		t.Errorf("Expected Allocate default 10m, got %v", timeouts.Allocate)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("Expected RetryMaxAttempts default 5, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != time.Second {
		t.Errorf("Expected RetryInitialDelay default 1s, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_EnvOverrides(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("PAASBOOT_TIMEOUT_STEP", "90s")
	t.Setenv("PAASBOOT_RETRY_MAX_ATTEMPTS", "2")

	timeouts := LoadTimeouts()

	if timeouts.Step != 90*time.Second {
		t.Errorf("Expected Step 90s, got %v", timeouts.Step)
	}
	if timeouts.RetryMaxAttempts != 2 {
		t.Errorf("Expected RetryMaxAttempts 2, got %d", timeouts.RetryMaxAttempts)
	}
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("PAASBOOT_TIMEOUT_STEP", "soon")
	t.Setenv("PAASBOOT_RETRY_MAX_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	if timeouts.Step != 5*time.Minute {
		t.Errorf("Expected invalid duration to fall back to 5m, got %v", timeouts.Step)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("Expected invalid int to fall back to 5, got %d", timeouts.RetryMaxAttempts)
	}
}

func clearTimeoutEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"PAASBOOT_TIMEOUT_STEP",
		"PAASBOOT_TIMEOUT_ALLOCATE",
		"PAASBOOT_RETRY_MAX_ATTEMPTS",
		"PAASBOOT_RETRY_INITIAL_DELAY",
	} {
		t.Setenv(v, "")
	}
}
