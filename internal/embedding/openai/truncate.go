package openai

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

type tokenizer interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// Truncator limits text to a number of model tokens. The encoding is loaded
// on first use.
type Truncator struct {
	maxTokens int

	once sync.Once
	load func() (tokenizer, error)
	enc  tokenizer
	err  error
}

// NewTruncator returns a Truncator for the cl100k_base encoding. A
// non-positive maxTokens disables truncation.
func NewTruncator(maxTokens int) *Truncator {
	return &Truncator{
		maxTokens: maxTokens,
		load: func() (tokenizer, error) {
			return tiktoken.GetEncoding(defaultEncoding)
		},
	}
}

// Truncate returns text cut to at most maxTokens tokens.
func (t *Truncator) Truncate(text string) (string, error) {
	if t == nil || t.maxTokens <= 0 || text == "" {
		return text, nil
	}

	t.once.Do(func() {
		t.enc, t.err = t.load()
	})
	if t.err != nil {
		return "", fmt.Errorf("load %s encoding: %w", defaultEncoding, t.err)
	}

	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= t.maxTokens {
		return text, nil
	}

	return t.enc.Decode(tokens[:t.maxTokens]), nil
}
