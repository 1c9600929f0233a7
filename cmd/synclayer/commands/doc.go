// Package commands defines the synclayer CLI and wires dependencies for subcommands.
//
// Commands
//
//   - config init       Write the effective settings to <home>/config.toml
//   - secret import     Store the encrypted secret blob (E_S) on this device
//   - secret show       Print the fingerprint of the local secret blob
//   - migrate receive   Destination: show a PIN and wait for the secret
//   - migrate send      Source: seal the local secret to the device behind a PIN
//   - migrate cancel    Destination: discard a pending migration key
//
// # Implementation
//
// The root command loads configuration (defaults, config file, then flags)
// and builds the logger before any subcommand runs. Commands that touch the
// sealed store build the dependency graph through wire(), which requires the
// passphrase.
package commands
