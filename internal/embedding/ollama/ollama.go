// Package ollama implements embedding.Embedder against a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/ats-scorer/internal/embedding"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	Provider       = "ollama"
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "nomic-embed-text"

	defaultTimeout = 60 * time.Second
	maxLoggedBody  = 200
)

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embedder calls POST /api/embed.
type Embedder struct {
	client  *http.Client
	baseURL string
	model   string
}

// New returns an Embedder. Empty arguments select the defaults.
func New(baseURL, model string) *Embedder {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	return &Embedder{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		model:   model,
	}
}

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	body, err := json.Marshal(embedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, embedding.NewProviderError(Provider, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, embedding.NewProviderError(Provider, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, embedding.NewProviderError(Provider, err)
		}
		return nil, embedding.NewRetryableError(Provider, fmt.Errorf("embedding request failed: %w", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, embedding.NewRetryableError(Provider, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, utils.TruncateForLog(string(payload), maxLoggedBody))
		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return nil, embedding.NewRetryableError(Provider, statusErr)
		case resp.StatusCode >= http.StatusBadRequest:
			return nil, embedding.NewPermanentError(Provider, statusErr)
		default:
			return nil, embedding.NewProviderError(Provider, statusErr)
		}
	}

	var decoded embedResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, embedding.NewProviderError(Provider, fmt.Errorf("parse response: %w", err))
	}

	if len(decoded.Embeddings) == 0 || len(decoded.Embeddings[0]) == 0 {
		return nil, embedding.NewProviderError(Provider, errors.New("ollama returned no embeddings"))
	}

	return embedding.Vector(decoded.Embeddings[0]), nil
}

func (e *Embedder) Provider() string { return Provider }
func (e *Embedder) Model() string    { return e.model }
