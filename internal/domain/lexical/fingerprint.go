package lexical

import (
	"encoding/json"
	"fmt"
	"math"
)

// fingerprintPrecision is the decimal rounding applied to persisted
// fingerprint components. Rounding is monotonic-preserving; exact
// floating-point round-tripping is not contractual.
const fingerprintPrecision = 1e6

// Fingerprint is the persisted record of one submission's TF-IDF row.
// It encodes as a JSON array of arrays (one row), mirroring the dense
// matrix form of the batch it was computed in. A stored fingerprint is an
// audit artifact only: it is not comparable to vectors from other batches.
type Fingerprint struct {
	row Vector
}

// NewFingerprint captures the given row.
func NewFingerprint(row Vector) Fingerprint {
	return Fingerprint{row: row}
}

// Row returns the captured vector.
func (f Fingerprint) Row() Vector {
	return f.row
}

// MarshalJSON encodes the fingerprint as [[v0, v1, ...]] with rounded
// components.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	rounded := make([]float64, len(f.row))
	for i, val := range f.row {
		rounded[i] = math.Round(val*fingerprintPrecision) / fingerprintPrecision
	}
	return json.Marshal([][]float64{rounded})
}

// UnmarshalJSON restores a fingerprint from its array-of-arrays form.
func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFingerprint, err)
	}
	if len(rows) != 1 {
		return fmt.Errorf("%w: expected one row, got %d", ErrInvalidFingerprint, len(rows))
	}
	f.row = Vector(rows[0])
	return nil
}

// String renders the JSON form, or an empty matrix on encoding failure.
func (f Fingerprint) String() string {
	data, err := json.Marshal(f)
	if err != nil {
		return "[[]]"
	}
	return string(data)
}
