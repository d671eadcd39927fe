package errors

import "errors"

var (
	ErrSessionNotFound = errors.New("phone input session not found")

	ErrSessionLimit = errors.New("phone input session limit reached")

	ErrUnknownCountry = errors.New("unknown country")
)
