package backplane

import "errors"

// Errors returned by link/send operations that target a terminated
// endpoint. Never returned for a self-link attempt — that is a
// programming error and panics instead.
var (
	// ErrDeviceDown means the local Device's plugboard is already closed.
	ErrDeviceDown = errors.New("backplane: device down")
	// ErrLinkDown means the remote Device's plugboard is already closed.
	ErrLinkDown = errors.New("backplane: link down")
)
