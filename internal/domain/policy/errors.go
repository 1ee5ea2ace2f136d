package policy

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
// Content-quality conditions (no text, plagiarism match) are normal
// rejected outcomes, not errors; only infrastructure failures surface
// through the error return.
var (
	ErrStoreFailure = errors.New("submission store failure")
)
