package ssh

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
)

// generateTestKey generates a PEM-encoded RSA private key for tests.
func generateTestKey(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func TestNewClient_Success(t *testing.T) {
	cfg := &Config{
		Host:       "192.0.2.10",
		PrivateKey: generateTestKey(t),
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if client == nil {
		t.Fatal("expected client, got nil")
	}

	// Verify defaults were applied
	if client.config.Port != defaultPort { //nolint:staticcheck // t.Fatal above ensures client is not nil
		t.Errorf("expected port %d, got %d", defaultPort, client.config.Port)
	}
	if client.config.User != defaultUser {
		t.Errorf("expected user %q, got %q", defaultUser, client.config.User)
	}
	if client.config.DialTimeout != defaultDialTimeout {
		t.Errorf("expected timeout %v, got %v", defaultDialTimeout, client.config.DialTimeout)
	}
	if client.config.MaxRetries != defaultMaxRetries {
		t.Errorf("expected max retries %d, got %d", defaultMaxRetries, client.config.MaxRetries)
	}
}

func TestNewClient_DoesNotMutateCallerConfig(t *testing.T) {
	cfg := &Config{
		Host:       "192.0.2.10",
		PrivateKey: generateTestKey(t),
	}

	if _, err := NewClient(cfg); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Port != 0 || cfg.User != "" {
		t.Errorf("caller config was mutated: port=%d user=%q", cfg.Port, cfg.User)
	}
}

func TestNewClient_NilConfig(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Fatal("expected error for nil config, got nil")
	}
}

func TestNewClient_MissingHost(t *testing.T) {
	cfg := &Config{PrivateKey: generateTestKey(t)}

	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error for missing host, got nil")
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	cfg := &Config{Host: "192.0.2.10"}

	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error for missing private key, got nil")
	}
}

func TestNewClient_InvalidKey(t *testing.T) {
	cfg := &Config{
		Host:       "192.0.2.10",
		PrivateKey: []byte("not a key"),
	}

	_, err := NewClient(cfg)
	if err == nil {
		t.Fatal("expected error for invalid private key, got nil")
	}
}
