package pda

import "errors"

var (
	// ErrInvalidSeed seed input is malformed, empty or oversized
	ErrInvalidSeed = errors.New("invalid seed")
)
