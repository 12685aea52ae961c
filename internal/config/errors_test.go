package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesNameTheField(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{&MissingFieldError{Field: "keyname"}, `"keyname"`},
		{&InvalidEnumError{Field: "table", Value: "mongodb", Allowed: Tables}, "cassandra, hypertable"},
		{&RangeError{Field: "min", Value: 0, Constraint: "must be at least 1"}, `"min"`},
		{&ReplicationFactorTooHighError{Requested: 5, DatabaseVMs: 2}, "5"},
		{&NoDatabaseRoleAssignedError{}, "database role"},
		{&CredentialCollisionError{Kind: "keypair", Name: "k1"}, `"k1"`},
	}

	for _, tt := range tests {
		assert.Contains(t, tt.err.Error(), tt.contains)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"missing field", &MissingFieldError{Field: "min"}, ExitMissingField},
		{"invalid enum", &InvalidEnumError{Field: "table"}, ExitInvalidEnum},
		{"range", &RangeError{Field: "max"}, ExitRange},
		{"replication too high", &ReplicationFactorTooHighError{Requested: 5, DatabaseVMs: 2}, ExitReplicationTooHigh},
		{"no database role", &NoDatabaseRoleAssignedError{}, ExitNoDatabaseRole},
		{"credential collision", &CredentialCollisionError{Kind: "keypair", Name: "k1"}, ExitCredentialCollision},
		{"unrelated error", errors.New("boom"), ExitFailure},
		{"wrapped resolver error", fmt.Errorf("resolution failed: %w", &RangeError{Field: "min"}), ExitRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
