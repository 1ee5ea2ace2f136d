package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrOpenStore = errors.New("failed to open store")
	ErrQuery     = errors.New("store query failed")
)
