package smc

import "errors"

var (
	// ErrNotOpen is returned by register reads and writes on a Conn
	// that has never been successfully opened.
	ErrNotOpen = errors.New("smc connection not open")

	// ErrUnrecognizedLedState is returned when a read-back LED byte
	// does not map to any known MagSafeLedState.
	ErrUnrecognizedLedState = errors.New("unrecognized magsafe led state")
)
