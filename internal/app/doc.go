// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, then <home>/config.toml, then flags applied by
// the caller), builds the sealed store, rendezvous client and services, and
// exposes them via the Wire struct for commands to use.
package app
