// Package textnorm turns free text into a canonical lexical form: lowercase
// lemmas with stop words and punctuation removed, joined by single spaces in
// source order.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// Normalizer turns raw text into normalized text.
type Normalizer interface {
	Normalize(text string) string
}

// Analyzer is the default Normalizer. It is safe for concurrent use since
// every component is read-only after construction.
type Analyzer struct {
	tokenizer analysis.Tokenizer
	filters   []analysis.TokenFilter
	resources *Resources
}

var apostrophes = strings.NewReplacer("’", "'", "ʼ", "'")

// New creates an Analyzer over the given resources.
func New(resources *Resources) *Analyzer {
	return &Analyzer{
		tokenizer: bleveunicode.NewUnicodeTokenizer(),
		filters: []analysis.TokenFilter{
			lowercase.NewLowerCaseFilter(),
			en.NewPossessiveFilter(),
		},
		resources: resources,
	}
}

// Default returns an Analyzer over DefaultResources. The built-in resources
// are compiled into the binary, so a load failure is a programming error.
func Default() *Analyzer {
	resources, err := DefaultResources()
	if err != nil {
		panic("textnorm: loading built-in resources: " + err.Error())
	}
	return New(resources)
}

// Normalize normalizes text with the default resources.
func Normalize(text string) string {
	return Default().Normalize(text)
}

// Normalize lowercases and tokenizes text, drops stop words and punctuation,
// lemmatizes the remaining tokens and joins them with single spaces.
func (a *Analyzer) Normalize(text string) string {
	return strings.Join(a.Tokens(text), " ")
}

// Tokens returns the normalized tokens of text in source order.
func (a *Analyzer) Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	stream := a.tokenizer.Tokenize([]byte(apostrophes.Replace(text)))
	for _, filter := range a.filters {
		stream = filter.Filter(stream)
	}

	tokens := make([]string, 0, len(stream))
	for _, token := range stream {
		term := string(token.Term)
		if !hasWordRune(term) || a.resources.IsStopword(term) {
			continue
		}

		lemma := a.resources.Lemmatizer.Lemma(term)
		if lemma == "" || a.resources.IsStopword(lemma) {
			continue
		}

		tokens = append(tokens, lemma)
	}

	return tokens
}

func hasWordRune(term string) bool {
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
