package services

import "errors"

var (
	// ErrNotFound means a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrProvider wraps failures reported by the payment provider.
	ErrProvider = errors.New("payment provider error")
)
