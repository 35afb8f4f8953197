package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/embedding"
	"github.com/spigell/ats-scorer/internal/embedding/cache"
	"github.com/spigell/ats-scorer/internal/embedding/gemini"
	"github.com/spigell/ats-scorer/internal/embedding/local"
	"github.com/spigell/ats-scorer/internal/embedding/ollama"
	"github.com/spigell/ats-scorer/internal/embedding/openai"
	"github.com/spigell/ats-scorer/internal/section"
	"github.com/spigell/ats-scorer/internal/secrets"
	"github.com/spigell/ats-scorer/internal/textnorm"
)

// newEmbedder builds the configured provider wrapped with retries and, when
// enabled, a cache. The returned cleanup must be called when done.
func newEmbedder(ctx context.Context, cfg *Config, logger *zap.Logger) (embedding.Embedder, func(), error) {
	provider, err := newProvider(ctx, cfg.Embedding)
	if err != nil {
		return nil, nil, err
	}

	var embedder embedding.Embedder = embedding.NewRetrying(provider, cfg.Embedding.MaxRetries+1, logger)
	cleanup := func() {}

	if !cfg.Cache.Enabled {
		return embedder, cleanup, nil
	}

	var store cache.Store = cache.NewMemoryStore()
	if address := strings.TrimSpace(cfg.Cache.Valkey.Address); address != "" {
		valkeyStore, err := cache.NewValkeyStore(ctx, address, cfg.Cache.Valkey.Password, cfg.Cache.Valkey.TTL)
		if err != nil {
			logger.Warn("falling back to in-memory embedding cache", zap.String("address", address), zap.Error(err))
		} else {
			store = valkeyStore
			cleanup = valkeyStore.Close
		}
	}

	return cache.New(embedder, store, logger), cleanup, nil
}

func newProvider(ctx context.Context, cfg *EmbeddingConfig) (embedding.Embedder, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", local.Provider:
		return local.New(cfg.Dimension), nil

	case gemini.Provider:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}
		return gemini.New(ctx, apiKey, cfg.Model, cfg.Dimension)

	case openai.Provider:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set embedding.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}
		return openai.New(apiKey,
			openai.WithModel(cfg.Model),
			openai.WithDimension(cfg.Dimension),
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithTruncator(openai.NewTruncator(cfg.MaxInputTokens)),
		)

	case ollama.Provider:
		return ollama.New(cfg.Ollama.BaseURL, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

func newExtractor(cfg *SectionsConfig) *section.Extractor {
	if cfg.CaseInsensitive {
		return section.New(section.WithCaseInsensitive())
	}
	return section.New()
}

// newNormalizer uses the shared built-in resources unless overrides are
// configured.
func newNormalizer(cfg *ResourcesConfig) (*textnorm.Analyzer, error) {
	if strings.TrimSpace(cfg.LemmasFile) == "" && len(cfg.ExtraStopwords) == 0 {
		resources, err := textnorm.DefaultResources()
		if err != nil {
			return nil, err
		}
		return textnorm.New(resources), nil
	}

	resources, err := textnorm.LoadResources(textnorm.ResourceOptions{
		LemmasFile:     cfg.LemmasFile,
		ExtraStopwords: cfg.ExtraStopwords,
	})
	if err != nil {
		return nil, fmt.Errorf("loading normalization resources: %w", err)
	}

	return textnorm.New(resources), nil
}
