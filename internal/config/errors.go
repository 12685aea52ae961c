package config

import (
	"errors"
	"fmt"
	"strings"
)

// MissingFieldError reports a required descriptor field that is absent
// (or present but empty, for string fields that must be non-empty).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing from the descriptor", e.Field)
}

// InvalidEnumError reports a descriptor field whose value is outside its
// allowed set.
type InvalidEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("field %q has invalid value %q: must be one of %s",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// RangeError reports an integer descriptor field that violates its
// numeric constraint.
type RangeError struct {
	Field      string
	Value      int
	Constraint string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("field %q has value %d: %s", e.Field, e.Value, e.Constraint)
}

// ReplicationFactorTooHighError reports an explicit replication factor
// that exceeds the number of database-role machines.
type ReplicationFactorTooHighError struct {
	Requested   int
	DatabaseVMs int
}

func (e *ReplicationFactorTooHighError) Error() string {
	return fmt.Sprintf("replication factor %d exceeds the %d machine(s) assigned the database role",
		e.Requested, e.DatabaseVMs)
}

// NoDatabaseRoleAssignedError reports that no machine carries the
// database role, so no replication factor can be derived or honored.
// Proceeding would silently provision an unreplicated store.
type NoDatabaseRoleAssignedError struct{}

func (e *NoDatabaseRoleAssignedError) Error() string {
	return "no machine is assigned the database role; cannot determine a replication factor"
}

// CredentialCollisionError reports that a keypair or security group named
// in the descriptor already exists in the target cloud account.
type CredentialCollisionError struct {
	Kind string // "keypair" or "security group"
	Name string
}

func (e *CredentialCollisionError) Error() string {
	return fmt.Sprintf("%s %q already exists in the cloud account; choose an unused name", e.Kind, e.Name)
}

// Exit codes for the error taxonomy. The CLI maps each resolver error
// variant to a distinct non-zero process exit code.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitMissingField        = 2
	ExitInvalidEnum         = 3
	ExitRange               = 4
	ExitReplicationTooHigh  = 5
	ExitNoDatabaseRole      = 6
	ExitCredentialCollision = 7
)

// ExitCode returns the process exit code for err. Resolver errors map to
// their dedicated codes; anything else maps to ExitFailure, and nil to
// ExitOK.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		missing     *MissingFieldError
		invalidEnum *InvalidEnumError
		rangeErr    *RangeError
		replication *ReplicationFactorTooHighError
		noDB        *NoDatabaseRoleAssignedError
		collision   *CredentialCollisionError
	)

	switch {
	case errors.As(err, &missing):
		return ExitMissingField
	case errors.As(err, &invalidEnum):
		return ExitInvalidEnum
	case errors.As(err, &rangeErr):
		return ExitRange
	case errors.As(err, &replication):
		return ExitReplicationTooHigh
	case errors.As(err, &noDB):
		return ExitNoDatabaseRole
	case errors.As(err, &collision):
		return ExitCredentialCollision
	default:
		return ExitFailure
	}
}
