package service

import "errors"

var (
	// ErrConfiguration means a required external credential is missing.
	ErrConfiguration  = errors.New("server is not configured")
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPersistence wraps failures of the sale store.
	ErrPersistence = errors.New("persistence failure")
	// ErrGateway wraps failures of the payment processor, including unexpected response shapes.
	ErrGateway  = errors.New("payment gateway failure")
	ErrNotFound = errors.New("sale not found")
)
