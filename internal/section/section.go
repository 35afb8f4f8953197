// Package section locates named regions of a résumé by scanning for known
// heading titles. Headings are literal markers: the content of a section runs
// from the end of its title to the nearest following title of the vocabulary.
package section

import (
	"strings"
)

// Section is a named region extracted from a document.
type Section struct {
	Name    Name
	Content string
	// Found is false when the heading does not occur in the document.
	Found bool
}

// Empty reports whether the section carries no content.
func (s Section) Empty() bool {
	return strings.TrimSpace(s.Content) == ""
}

// Extractor finds sections in raw documents. The zero value is not usable,
// use New.
type Extractor struct {
	foldCase   bool
	vocabulary []Name
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCaseInsensitive makes heading matches ignore ASCII letter case. The
// policy applies to both Extract and ExtractSkills.
func WithCaseInsensitive() Option {
	return func(e *Extractor) {
		e.foldCase = true
	}
}

// WithVocabulary appends extra heading titles to the default vocabulary.
func WithVocabulary(names ...Name) Option {
	return func(e *Extractor) {
		for _, name := range names {
			name = Name(strings.TrimSpace(string(name)))
			if name == "" || contains(e.vocabulary, name) {
				continue
			}
			e.vocabulary = append(e.vocabulary, name)
		}
	}
}

// New returns an Extractor using the default vocabulary and case-sensitive
// matching unless options say otherwise.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		vocabulary: append([]Name(nil), Vocabulary...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Extract runs the default case-sensitive extractor.
func Extract(document string, target Name) Section {
	return defaultExtractor.Extract(document, target)
}

// ExtractSkills runs the default case-sensitive skills extraction.
func ExtractSkills(document string) []string {
	return defaultExtractor.ExtractSkills(document)
}

// CaseInsensitive reports the matching policy of the extractor.
func (e *Extractor) CaseInsensitive() bool {
	return e.foldCase
}

// Extract returns the content between the first occurrence of target and the
// nearest later occurrence of any vocabulary title, the target included.
// A missing heading yields a Section with Found set to false.
func (e *Extractor) Extract(document string, target Name) Section {
	result := Section{Name: target}

	title := string(target)
	if title == "" {
		return result
	}

	start := e.index(document, title, 0)
	if start == -1 {
		return result
	}

	contentStart := start + len(title)
	end := len(document)

	for _, name := range e.boundaries(target) {
		if i := e.index(document, string(name), contentStart); i != -1 && i < end {
			end = i
		}
	}

	result.Content = strings.TrimSpace(document[contentStart:end])
	result.Found = true

	return result
}

// boundaries is the vocabulary plus target when target is not part of it.
func (e *Extractor) boundaries(target Name) []Name {
	if contains(e.vocabulary, target) {
		return e.vocabulary
	}
	return append(append([]Name(nil), e.vocabulary...), target)
}

// index returns the byte offset of the first occurrence of substr in s at or
// after from, or -1.
func (e *Extractor) index(s, substr string, from int) int {
	if from < 0 || from > len(s) {
		return -1
	}

	if !e.foldCase {
		i := strings.Index(s[from:], substr)
		if i == -1 {
			return -1
		}
		return from + i
	}

	n := len(substr)
	for i := from; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}

	return -1
}

func contains(names []Name, target Name) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}
