package bean

import "errors"

var (
	// ErrInvalidInput indicates invalid bean input.
	ErrInvalidInput = errors.New("invalid bean input")
)
