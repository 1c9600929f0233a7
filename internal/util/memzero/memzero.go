package memzero

import "runtime"

// Zero overwrites b with zeros. This is best-effort: it keeps b live past the
// write so the compiler cannot drop it as dead.
//
//go:noinline
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(b)
}
