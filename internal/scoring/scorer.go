// Package scoring compares a résumé with a job description.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spigell/ats-scorer/internal/embedding"
)

// Scorer embeds two texts and returns their cosine similarity.
type Scorer struct {
	embedder embedding.Embedder
}

func NewScorer(embedder embedding.Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score returns the cosine similarity of the embeddings of resumeText and
// jdText, in [-1, 1] up to floating point error. Embedding failures are
// returned as embedding.ErrProvider and never replaced by a default score.
func (s *Scorer) Score(ctx context.Context, resumeText, jdText string) (float64, error) {
	resumeVector, err := s.embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("embedding resume: %w", err)
	}

	jdVector, err := s.embed(ctx, jdText)
	if err != nil {
		return 0, fmt.Errorf("embedding job description: %w", err)
	}

	score, err := embedding.Cosine(resumeVector, jdVector)
	if err != nil {
		return 0, fmt.Errorf("comparing embeddings: %w", err)
	}

	return score, nil
}

func (s *Scorer) embed(ctx context.Context, text string) (embedding.Vector, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, embedding.ErrProvider) {
			return nil, err
		}
		provider, _ := embedding.Describe(s.embedder)
		return nil, embedding.NewProviderError(provider, err)
	}
	return vector, nil
}

// Percent rescales a similarity score to a percentage rounded to two
// decimals.
func Percent(score float64) float64 {
	return math.Round(score*100*100) / 100
}
