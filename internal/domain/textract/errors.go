package textract

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnsupportedType means no extraction handler exists for the file
	// extension. The caller may fall back to inline content.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoText means a recognized file yielded no usable text.
	ErrNoText = errors.New("no extractable text")

	// ErrInvalidEncoding means a plain-text file was not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")
)
