package textnorm

import "testing"

func TestLemmatizerLemma(t *testing.T) {
	t.Parallel()

	resources, err := DefaultResources()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lemmatizer := resources.Lemmatizer

	tests := []struct {
		word string
		want string
	}{
		{"services", "service"},
		{"companies", "company"},
		{"ties", "tie"},
		{"classes", "class"},
		{"processes", "process"},
		{"boxes", "box"},
		{"branches", "branch"},
		{"crashes", "crash"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"analyses", "analysis"},
		{"running", "run"},
		{"built", "build"},
		{"children", "child"},
		{"kubernetes", "kubernetes"},
		{"series", "series"},
		{"caches", "cache"},
		{"apis", "api"},
		{"node.js", "node.js"},
		{"1990s", "1990s"},
		{"bus", "bus"},
		{"go", "go"},
		{"movies", "movie"},
		{"buses", "bus"},
		{"crises", "crisis"},
		{"cookies", "cookie"},
		{"quizzes", "quiz"},
		{"statuses", "status"},
		{"businesses", "business"},
		{"libraries", "library"},
		{"sses", "sses"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			if got := lemmatizer.Lemma(tt.word); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLemmatizerFixedPoint(t *testing.T) {
	resources, err := DefaultResources()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lemmatizer := resources.Lemmatizer

	words := []string{
		"glasses", "gases", "heroes", "potatoes", "analyses", "indexes",
		"statuses", "businesses", "libraries", "leaves", "criteria", "buzzes",
	}

	for _, word := range words {
		once := lemmatizer.Lemma(word)
		if twice := lemmatizer.Lemma(once); once != twice {
			t.Fatalf("lemma of %q is not stable: %q -> %q", word, once, twice)
		}
	}
}

type mapDictionary map[string]string

func (d mapDictionary) Lemma(word string) string {
	if lemma, ok := d[word]; ok {
		return lemma
	}
	return word
}

func TestNewLemmatizerPinsUnstableLemmas(t *testing.T) {
	dict := mapDictionary{"species": "specie", "redis": "redi", "clusters": "cluster"}
	l := NewLemmatizer(map[string]string{"specieses": "species", " ": "x"}, []string{"", " Redis "}, dict)

	if got := l.Lemma("specieses"); got != "species" {
		t.Fatalf("expected species, got %q", got)
	}
	if got := l.Lemma("species"); got != "species" {
		t.Fatalf("expected pinned lemma, got %q", got)
	}
	if got := l.Lemma("redis"); got != "redis" {
		t.Fatalf("expected kept word, got %q", got)
	}
	if got := l.Lemma("clusters"); got != "cluster" {
		t.Fatalf("expected dictionary lemma, got %q", got)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 table entries, got %d", l.Len())
	}
}

func TestLemmatizerWithoutDictionary(t *testing.T) {
	l := NewLemmatizer(map[string]string{"ran": "run"}, nil, nil)

	if got := l.Lemma("ran"); got != "run" {
		t.Fatalf("expected run, got %q", got)
	}
	if got := l.Lemma("services"); got != "services" {
		t.Fatalf("expected unknown word unchanged, got %q", got)
	}
}

func TestLemmatizerResolvesDictionaryCycles(t *testing.T) {
	dict := mapDictionary{"b": "c", "c": "a", "a": "b", "d": "d.d", "e": "E"}
	l := NewLemmatizer(nil, nil, dict)

	for _, word := range []string{"a", "b", "c"} {
		if got := l.Lemma(word); got != "a" {
			t.Fatalf("expected cycle through %q to resolve to a, got %q", word, got)
		}
	}
	if got := l.Lemma("d"); got != "d" {
		t.Fatalf("expected non-word lemma to be ignored, got %q", got)
	}
	if got := l.Lemma("e"); got != "e" {
		t.Fatalf("expected lowercase lemma, got %q", got)
	}
}
