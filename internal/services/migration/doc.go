// Package migration drives the two roles of a device migration.
//
// The destination generates an ephemeral P-256 key, registers its public half
// with the rendezvous service, shows the returned PIN and polls for the
// sealed payload until it arrives or the key's TTL runs out. The source takes
// the PIN, fetches the destination key, seals the local secret blob to it and
// submits the frame.
//
// Every flow is a Session. Sessions only move forward through the state
// table in session.go; once a session is terminal its key timer is stopped,
// its stored key is gone and further operations fail with
// domain.ErrSessionTerminal.
package migration
