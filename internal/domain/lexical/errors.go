package lexical

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyBatch         = errors.New("empty document batch")
	ErrInvalidFingerprint = errors.New("invalid fingerprint encoding")
)
