// Package relay provides both ends of the PIN rendezvous service.
//
// HTTP implements domain.RendezvousClient. Server is an in-memory
// implementation of the same service for development and tests.
//
// Supported operations include:
//   - Registering a destination public key and receiving a PIN.
//   - Fetching the public key registered under a PIN.
//   - Submitting the sealed payload for (username, PIN).
//   - Fetching that payload, once, from the destination.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Errors carry a machine-readable code that the client maps onto
// the domain errors: transport failures and 5xx become
// domain.ErrRendezvousUnavailable, unknown or expired PINs become
// domain.ErrPinNotFound, and a missing payload becomes
// domain.ErrNotYetAvailable.
package relay
