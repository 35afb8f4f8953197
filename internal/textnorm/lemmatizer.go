package textnorm

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Dictionary maps a word to one of its base forms, returning the word
// unchanged when it is unknown.
type Dictionary interface {
	Lemma(word string) string
}

var (
	englishOnce sync.Once
	english     *golem.Lemmatizer
	englishErr  error
)

// EnglishDictionary loads the golem English dictionary once per process.
func EnglishDictionary() (Dictionary, error) {
	englishOnce.Do(func() {
		english, englishErr = golem.New(en.New())
		if englishErr != nil {
			englishErr = fmt.Errorf("load english dictionary: %w", englishErr)
		}
	})
	if englishErr != nil {
		return nil, englishErr
	}
	return english, nil
}

// Lemmatizer reduces English words to a dictionary form. Entries of the
// lookup table win, everything else goes through the dictionary.
// Lemma always returns a fixed point: Lemma(Lemma(w)) == Lemma(w).
type Lemmatizer struct {
	table map[string]string
	dict  Dictionary
}

// NewLemmatizer builds a lemmatizer from form -> lemma pairs, a list of
// words that must never change and a dictionary for everything else. A nil
// dictionary leaves unknown words as they are. Table lemmas that the
// dictionary would rewrite are pinned to themselves.
func NewLemmatizer(forms map[string]string, keep []string, dict Dictionary) *Lemmatizer {
	table := make(map[string]string, len(forms)+len(keep))

	for form, lemma := range forms {
		form = strings.ToLower(strings.TrimSpace(form))
		lemma = strings.ToLower(strings.TrimSpace(lemma))
		if form == "" || lemma == "" {
			continue
		}
		table[form] = lemma
	}

	for _, word := range keep {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		table[word] = word
	}

	l := &Lemmatizer{table: table, dict: dict}

	lemmas := make([]string, 0, len(table))
	for _, lemma := range table {
		lemmas = append(lemmas, lemma)
	}

	for _, lemma := range lemmas {
		if _, ok := table[lemma]; ok {
			continue
		}
		if l.lookup(lemma) != lemma {
			table[lemma] = lemma
		}
	}

	return l
}

// Lemma returns the dictionary form of a lowercase word. Dictionaries may
// map base forms onto each other; such cycles resolve to their
// lexicographically smallest member so that every member agrees.
func (l *Lemmatizer) Lemma(word string) string {
	seen := map[string]struct{}{word: {}}
	path := []string{word}

	for {
		next := l.step(word)
		if next == word {
			return word
		}
		if _, ok := seen[next]; ok {
			return smallest(path[indexOf(path, next):])
		}
		seen[next] = struct{}{}
		path = append(path, next)
		word = next
	}
}

// Len returns the number of table entries.
func (l *Lemmatizer) Len() int {
	return len(l.table)
}

func (l *Lemmatizer) step(word string) string {
	if lemma, ok := l.table[word]; ok {
		return lemma
	}
	return l.lookup(word)
}

// lookup consults the dictionary for plain words only. Lemmas that would
// not survive tokenization as a single word are ignored.
func (l *Lemmatizer) lookup(word string) string {
	if l.dict == nil || !isLetters(word) {
		return word
	}

	lemma := strings.ToLower(l.dict.Lemma(word))
	if !isLetters(lemma) {
		return word
	}
	return lemma
}

func isLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func indexOf(words []string, word string) int {
	for i, w := range words {
		if w == word {
			return i
		}
	}
	return 0
}

func smallest(words []string) string {
	low := words[0]
	for _, w := range words[1:] {
		if w < low {
			low = w
		}
	}
	return low
}
