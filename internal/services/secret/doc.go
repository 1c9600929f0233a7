// Package secret manages the encrypted secret blob (E_S) held on this device.
//
// The blob is opaque to the migration protocol: it is imported, stored in the
// secret_blob slot, and handed to the source side of a migration unchanged.
package secret
