package usecase

import "errors"

// ErrInvalidInput marks malformed or missing request input. Callers wrap it
// with a human-readable detail: fmt.Errorf("%w: title is required", ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid input")
