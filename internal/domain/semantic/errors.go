package semantic

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEncoderUnavailable = errors.New("encoder unavailable")
)
