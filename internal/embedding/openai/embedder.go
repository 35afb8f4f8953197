// Package openai implements embedding.Embedder with the OpenAI embeddings
// API or any server speaking the same protocol.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/spigell/ats-scorer/internal/embedding"
)

const (
	Provider     = "openai"
	DefaultModel = "text-embedding-3-small"
)

type embedderOptions struct {
	model     string
	dimension int
	baseURL   string
	truncator *Truncator
}

// Option configures an Embedder.
type Option func(*embedderOptions)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(o *embedderOptions) {
		if model = strings.TrimSpace(model); model != "" {
			o.model = model
		}
	}
}

// WithDimension requests shortened vectors. Zero keeps the model default.
func WithDimension(dimension int) Option {
	return func(o *embedderOptions) {
		o.dimension = dimension
	}
}

// WithBaseURL points the client at a compatible server.
func WithBaseURL(url string) Option {
	return func(o *embedderOptions) {
		o.baseURL = strings.TrimSpace(url)
	}
}

// WithTruncator cuts inputs that exceed the model context window.
func WithTruncator(t *Truncator) Option {
	return func(o *embedderOptions) {
		o.truncator = t
	}
}

// Embedder embeds text through the embeddings endpoint.
type Embedder struct {
	client    openai.Client
	model     string
	dimension int
	truncator *Truncator
}

// New creates an Embedder. The SDK's own retries are disabled so that
// retry policy stays with the caller.
func New(apiKey string, opts ...Option) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	options := embedderOptions{model: DefaultModel}
	for _, opt := range opts {
		opt(&options)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if options.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(options.baseURL))
	}

	return &Embedder{
		client:    openai.NewClient(clientOpts...),
		model:     options.model,
		dimension: options.dimension,
		truncator: options.truncator,
	}, nil
}

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	if e.truncator != nil {
		truncated, err := e.truncator.Truncate(text)
		if err != nil {
			return nil, embedding.NewProviderError(Provider, fmt.Errorf("truncate input: %w", err))
		}
		text = truncated
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	}
	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, embedding.NewProviderError(Provider, errors.New("no embeddings generated"))
	}

	return embedding.FromFloat64(resp.Data[0].Embedding), nil
}

func (e *Embedder) Provider() string { return Provider }
func (e *Embedder) Model() string    { return e.model }

// Dimension returns the requested vector size, 0 for the model default.
func (e *Embedder) Dimension() int { return e.dimension }

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return embedding.NewProviderError(Provider, err)
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return embedding.NewRetryableError(Provider, err)
	}

	switch code := apiErr.StatusCode; {
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return embedding.NewRetryableError(Provider, err)
	case code == http.StatusBadRequest, code == http.StatusUnauthorized, code == http.StatusForbidden, code == http.StatusNotFound:
		return embedding.NewPermanentError(Provider, err)
	default:
		return embedding.NewProviderError(Provider, err)
	}
}
