// Package local provides an offline Embedder based on feature hashing.
// It needs no network access and is fully deterministic, which makes it the
// default for tests and air-gapped runs. It captures lexical overlap only.
package local

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/spigell/ats-scorer/internal/embedding"
)

const (
	// Provider is the name reported in logs and cache keys.
	Provider = "local"

	DefaultDimension = 512
	model            = "xxhash-bow"
)

// Embedder hashes unigrams and adjacent bigrams into a fixed-size vector
// and L2-normalizes the result.
type Embedder struct {
	dimension int
}

// New returns an Embedder producing vectors of the given dimension.
// Non-positive values select DefaultDimension.
func New(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{dimension: dimension}
}

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vector := make(embedding.Vector, e.dimension)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, word := range words {
		e.add(vector, word, 1)
		if i > 0 {
			e.add(vector, words[i-1]+" "+word, 0.5)
		}
	}

	var norm float64
	for _, x := range vector {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return vector, nil
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vector {
		vector[i] *= scale
	}

	return vector, nil
}

// add uses the low bits of the hash for the bucket and one high bit for the
// sign so collisions tend to cancel instead of accumulate.
func (e *Embedder) add(vector embedding.Vector, feature string, weight float32) {
	h := xxhash.Sum64String(feature)
	bucket := h % uint64(e.dimension)
	if h>>63 == 1 {
		weight = -weight
	}
	vector[bucket] += weight
}

func (e *Embedder) Provider() string { return Provider }
func (e *Embedder) Model() string    { return model }

// Dimension returns the length of produced vectors.
func (e *Embedder) Dimension() int { return e.dimension }
