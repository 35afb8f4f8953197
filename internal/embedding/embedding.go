// Package embedding defines the narrow contract the scorer needs from an
// embedding provider and the helpers shared by every provider adapter.
package embedding

import (
	"context"
)

// Vector is a dense text embedding. Its dimensionality is defined by the
// provider and is otherwise opaque.
type Vector []float32

// Embedder turns text into a Vector. Implementations must be deterministic
// for identical input.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) (Vector, error)

func (f EmbedderFunc) Embed(ctx context.Context, text string) (Vector, error) {
	return f(ctx, text)
}

// Describer is implemented by embedders that can name their backing
// provider and model. It is used for log fields and cache namespaces.
type Describer interface {
	Provider() string
	Model() string
}

// Describe returns provider and model of e when it implements Describer.
func Describe(e Embedder) (provider, model string) {
	if d, ok := e.(Describer); ok {
		return d.Provider(), d.Model()
	}
	return "", ""
}

// Dimensioner is implemented by embedders with a configured output
// dimension. Zero means the provider default.
type Dimensioner interface {
	Dimension() int
}

// DimensionOf returns the configured dimension of e, or 0 when unknown.
func DimensionOf(e Embedder) int {
	if d, ok := e.(Dimensioner); ok {
		return d.Dimension()
	}
	return 0
}

// FromFloat64 converts provider output to a Vector.
func FromFloat64(values []float64) Vector {
	v := make(Vector, len(values))
	for i, value := range values {
		v[i] = float32(value)
	}
	return v
}
