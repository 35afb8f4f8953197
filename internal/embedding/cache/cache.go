// Package cache memoizes embeddings keyed by provider, model, dimension and
// text.
// Store failures are logged and bypassed so that scoring never fails
// because of the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/embedding"
)

const keyPrefix = "ats:embedding:"

// Store is a byte-oriented key/value backend.
type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Embedder wraps another Embedder with a Store.
type Embedder struct {
	next   embedding.Embedder
	store  Store
	logger *zap.Logger
}

func New(next embedding.Embedder, store Store, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{next: next, store: store, logger: logger}
}

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	key := e.Key(text)

	raw, ok, err := e.store.Get(ctx, key)
	switch {
	case err != nil:
		e.logger.Warn("reading embedding cache", zap.String("key", key), zap.Error(err))
	case ok:
		vector, decodeErr := Decode(raw)
		if decodeErr == nil {
			e.logger.Debug("embedding cache hit", zap.String("key", key))
			return vector, nil
		}
		e.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(decodeErr))
	}

	vector, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.store.Set(ctx, key, Encode(vector)); err != nil {
		e.logger.Warn("writing embedding cache", zap.String("key", key), zap.Error(err))
	}

	return vector, nil
}

// Key namespaces text by the provider, model and dimension of the wrapped
// embedder.
func (e *Embedder) Key(text string) string {
	provider, model := embedding.Describe(e.next)
	dimension := embedding.DimensionOf(e.next)

	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(dimension)))
	h.Write([]byte{0})
	h.Write([]byte(text))

	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (e *Embedder) Provider() string {
	provider, _ := embedding.Describe(e.next)
	return provider
}

func (e *Embedder) Model() string {
	_, model := embedding.Describe(e.next)
	return model
}

func (e *Embedder) Dimension() int {
	return embedding.DimensionOf(e.next)
}

// Encode serializes v as little-endian float32 values.
func Encode(v embedding.Vector) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// Decode is the inverse of Encode.
func Decode(raw []byte) (embedding.Vector, error) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: cached payload of %d bytes", embedding.ErrMalformedVector, len(raw))
	}

	v := make(embedding.Vector, len(raw)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return v, nil
}
