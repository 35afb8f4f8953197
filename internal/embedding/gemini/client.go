// Package gemini implements embedding.Embedder on top of the Google GenAI
// embedding endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/ats-scorer/internal/embedding"
)

const (
	Provider     = "gemini"
	DefaultModel = "gemini-embedding-001"

	taskType = "SEMANTIC_SIMILARITY"
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder embeds text with a Gemini embedding model.
type Embedder struct {
	models    contentEmbedder
	model     string
	dimension int32
}

// New creates an Embedder for the Gemini API backend. A zero dimension keeps
// the model default.
func New(ctx context.Context, apiKey, model string, dimension int) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEmbedder(client.Models, model, dimension), nil
}

func newEmbedder(models contentEmbedder, model string, dimension int) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if dimension < 0 {
		dimension = 0
	}

	return &Embedder{models: models, model: model, dimension: int32(dimension)}
}

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimension > 0 {
		dim := e.dimension
		cfg.OutputDimensionality = &dim
	}

	resp, err := e.models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
	if err != nil {
		return nil, classify(err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, embedding.NewProviderError(Provider, errors.New("gemini api returned empty embedding"))
	}

	return embedding.Vector(resp.Embeddings[0].Values), nil
}

func (e *Embedder) Provider() string { return Provider }
func (e *Embedder) Model() string    { return e.model }

// Dimension returns the requested output dimensionality, 0 for the model default.
func (e *Embedder) Dimension() int { return int(e.dimension) }

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return embedding.NewProviderError(Provider, err)
	}

	code, ok := statusCode(err)
	if !ok {
		// Transport level failures never reached the API.
		return embedding.NewRetryableError(Provider, err)
	}

	switch {
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return embedding.NewRetryableError(Provider, err)
	case code == http.StatusBadRequest, code == http.StatusUnauthorized, code == http.StatusForbidden, code == http.StatusNotFound:
		return embedding.NewPermanentError(Provider, err)
	default:
		return embedding.NewProviderError(Provider, err)
	}
}

func statusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}

	return 0, false
}
