package textnorm

import (
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/BurntSushi/toml"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
)

//go:embed lemmas.toml
var defaultLemmas []byte

// punctuation mirrors the ASCII punctuation set that joins the stop list.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Resources are the read-only language data used by the normalizer.
type Resources struct {
	Stopwords  analysis.TokenMap
	Lemmatizer *Lemmatizer
}

// ResourceOptions customise LoadResources.
type ResourceOptions struct {
	// LemmasFile is a TOML file merged over the built-in lemma table. Table
	// entries take precedence over the English dictionary.
	LemmasFile string
	// ExtraStopwords are added to the built-in English stop list.
	ExtraStopwords []string
}

type lemmaData struct {
	Keep      []string            `toml:"keep"`
	Stopwords []string            `toml:"stopwords"`
	Lemmas    map[string][]string `toml:"lemmas"`
}

// IsStopword reports whether token is in the stop list.
func (r *Resources) IsStopword(token string) bool {
	return r.Stopwords[token]
}

// LoadResources builds the stop list and lemma table.
func LoadResources(opts ResourceOptions) (*Resources, error) {
	var data lemmaData
	if _, err := toml.Decode(string(defaultLemmas), &data); err != nil {
		return nil, fmt.Errorf("decode built-in lemma table: %w", err)
	}

	var override lemmaData
	if path := strings.TrimSpace(opts.LemmasFile); path != "" {
		if _, err := toml.DecodeFile(path, &override); err != nil {
			return nil, fmt.Errorf("decode lemma table %q: %w", path, err)
		}
	}

	stopwords := analysis.NewTokenMap()
	if err := stopwords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load english stop words: %w", err)
	}

	for _, r := range punctuation {
		stopwords.AddToken(string(r))
	}

	for _, words := range [][]string{data.Stopwords, override.Stopwords, opts.ExtraStopwords} {
		for _, word := range words {
			if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
				stopwords.AddToken(word)
			}
		}
	}

	// Override entries are applied last so they win over built-in forms.
	forms := make(map[string]string)
	data.addForms(forms)
	override.addForms(forms)

	keep := append(append([]string(nil), data.Keep...), override.Keep...)

	dict, err := EnglishDictionary()
	if err != nil {
		return nil, err
	}

	return &Resources{
		Stopwords:  stopwords,
		Lemmatizer: NewLemmatizer(forms, keep, dict),
	}, nil
}

func (d lemmaData) addForms(forms map[string]string) {
	for lemma, inflected := range d.Lemmas {
		for _, form := range inflected {
			forms[form] = lemma
		}
	}
}

var (
	defaultOnce      sync.Once
	defaultResources *Resources
	defaultErr       error
)

// DefaultResources loads the built-in resources once per process.
func DefaultResources() (*Resources, error) {
	defaultOnce.Do(func() {
		defaultResources, defaultErr = LoadResources(ResourceOptions{})
	})
	return defaultResources, defaultErr
}
