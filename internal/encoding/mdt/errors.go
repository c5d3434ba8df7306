package mdt

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrEncode marks a fatal failure while producing an export string.
	// No partial export is ever returned alongside it.
	ErrEncode = errors.New("mdt encode failed")

	// ErrDecode marks an export string this package cannot invert.
	ErrDecode = errors.New("mdt decode failed")
)
