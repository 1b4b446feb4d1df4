package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrSessionNotActive = errors.New("session is not active")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidHex       = errors.New("invalid hex color")
	ErrUnknownLanguage  = errors.New("unknown language")
	ErrInvalidContent   = errors.New("invalid content")
	ErrInvalidName      = errors.New("name is required")
)
