// Package config implements the deployment descriptor and its resolution
// into a concrete deployment plan.
//
// A descriptor is a sparse key/value file: every optional key may be
// entirely absent, which means "use the default". Resolution validates
// the descriptor, fills defaults, derives the database replication
// factor, and produces a Plan that is internally consistent and complete
// for all downstream consumers. Resolution is a pure computation; the
// only cloud interaction in this package is the delegated credential
// collision check.
package config
