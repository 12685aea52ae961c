// Package cloud talks to the EC2-compatible infrastructure API.
//
// One Agent interface covers everything the core needs from the cloud:
// counting machines by role, keypair and security-group existence checks,
// and VM allocation. EC2Agent is the production implementation; a
// Eucalyptus deployment uses the same client pointed at the cloud's own
// endpoint. Mock is a func-field test double.
package cloud
