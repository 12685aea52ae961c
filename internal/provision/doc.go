// Package provision brings freshly allocated cluster hosts to a
// known-good baseline state.
//
// A provisioning run is an ordered sequence of idempotent steps, each
// with an explicit precondition checked against live host state. Steps
// run strictly in order on a host; a failure halts that host's sequence
// and re-invoking the whole sequence after fixing the cause is the
// recovery path. Hosts are independent: runs on different hosts proceed
// in parallel, and at most one run may touch a given host at a time.
package provision
