package embedding

import (
	"fmt"
	"math"
)

// Validate checks that v can take part in a similarity computation.
func Validate(v Vector) error {
	if len(v) == 0 {
		return fmt.Errorf("%w: empty vector", ErrMalformedVector)
	}
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: component %d is %v", ErrMalformedVector, i, x)
		}
	}
	return nil
}

// Cosine returns dot(u, v) / (|u| * |v|). Vectors must share a dimension.
// When either vector has zero norm the angle is undefined and 0 is returned.
// Floating point error may push the result slightly outside [-1, 1].
func Cosine(u, v Vector) (float64, error) {
	if err := Validate(u); err != nil {
		return 0, err
	}
	if err := Validate(v); err != nil {
		return 0, err
	}
	if len(u) != len(v) {
		return 0, fmt.Errorf("%w: dimension mismatch %d != %d", ErrMalformedVector, len(u), len(v))
	}

	var dot, normU, normV float64
	for i := range u {
		a, b := float64(u[i]), float64(v[i])
		dot += a * b
		normU += a * a
		normV += b * b
	}

	denom := math.Sqrt(normU) * math.Sqrt(normV)
	if denom == 0 {
		return 0, nil
	}

	return dot / denom, nil
}
