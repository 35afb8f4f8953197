package section

import (
	"reflect"
	"testing"
)

const sampleResume = "Experience\nBuilt a service.\n\nSkills\nPython, Go\n\nEducation\nBS CS"

func TestExtractExperienceScenario(t *testing.T) {
	got := Extract(sampleResume, Experience)
	if !got.Found {
		t.Fatalf("expected experience section to be found")
	}

	if got.Content != "Built a service." {
		t.Fatalf("unexpected content: %q", got.Content)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		document  string
		target    Name
		opts      []Option
		want      string
		wantFound bool
	}{
		{
			name:     "missing heading",
			document: "Education\nBS CS",
			target:   Experience,
		},
		{
			name:     "empty document",
			document: "",
			target:   Skills,
		},
		{
			name:      "content between experience and skills",
			document:  "Summary\nGopher\nExperience\n  Led a team of five.\nShipped billing.\n Skills\nGo",
			target:    Experience,
			want:      "Led a team of five.\nShipped billing.",
			wantFound: true,
		},
		{
			name:      "last section runs to end of document",
			document:  sampleResume,
			target:    Education,
			want:      "BS CS",
			wantFound: true,
		},
		{
			name:      "heading at end of document",
			document:  "Summary\nGopher\nExperience",
			target:    Experience,
			want:      "",
			wantFound: true,
		},
		{
			name:      "repeated heading ends the section",
			document:  "Experience\nAcme\nExperience\nGlobex",
			target:    Experience,
			want:      "Acme",
			wantFound: true,
		},
		{
			name:      "lowercase prose is not a heading by default",
			document:  "Five years of experience.\nExperience\nAcme\n\nEducation\nMIT",
			target:    Experience,
			want:      "Acme",
			wantFound: true,
		},
		{
			name:     "uppercase heading ignored when case sensitive",
			document: "EXPERIENCE\nAcme\n\nSKILLS\nGo",
			target:   Experience,
		},
		{
			name:      "uppercase heading matched when case insensitive",
			document:  "EXPERIENCE\nAcme\n\nSKILLS\nGo",
			target:    Experience,
			opts:      []Option{WithCaseInsensitive()},
			want:      "Acme",
			wantFound: true,
		},
		{
			name:      "extra vocabulary ends the section",
			document:  "Experience\nAcme\nHobbies\nChess",
			target:    Experience,
			opts:      []Option{WithVocabulary("Hobbies")},
			want:      "Acme",
			wantFound: true,
		},
		{
			name:      "target outside vocabulary",
			document:  "Hobbies\nChess\nHobbies\nGo",
			target:    "Hobbies",
			want:      "Chess",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := New(tt.opts...).Extract(tt.document, tt.target)
			if got.Found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, got.Found)
			}
			if got.Content != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got.Content)
			}
			if got.Name != tt.target {
				t.Fatalf("expected name %q, got %q", tt.target, got.Name)
			}
		})
	}
}

// A title mentioned inside the content truncates the section. This is the
// accepted limitation of scanning for any known title after the heading.
func TestExtractTruncatesOnEmbeddedTitle(t *testing.T) {
	document := "Experience\nRan workshops on Soft Skills for juniors.\n\nEducation\nBS CS"

	got := Extract(document, Experience)
	if got.Content != "Ran workshops on" {
		t.Fatalf("expected truncated content, got %q", got.Content)
	}
}

func TestExtractHeadingNotIncluded(t *testing.T) {
	got := Extract("Work Experience\nAcme Corp", WorkExperience)
	if got.Content != "Acme Corp" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
}

func TestSectionEmpty(t *testing.T) {
	if !(Section{Content: " \n\t"}).Empty() {
		t.Fatalf("expected whitespace content to be empty")
	}
	if (Section{Content: "Go"}).Empty() {
		t.Fatalf("expected content to be non-empty")
	}
}

func TestNameKnown(t *testing.T) {
	if !Experience.Known() {
		t.Fatalf("expected Experience to be known")
	}
	if Name("Hobbies").Known() {
		t.Fatalf("did not expect Hobbies to be known")
	}
}

func TestWithVocabularySkipsDuplicates(t *testing.T) {
	e := New(WithVocabulary(Skills, " ", "Hobbies", "Hobbies"))
	if len(e.vocabulary) != len(Vocabulary)+1 {
		t.Fatalf("expected one extra title, got %d", len(e.vocabulary)-len(Vocabulary))
	}
	if e.CaseInsensitive() {
		t.Fatalf("expected case sensitive extractor by default")
	}
}

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		opts     []Option
		want     []string
	}{
		{
			name:     "scenario",
			document: sampleResume,
			want:     []string{"Python", "Go"},
		},
		{
			name:     "no skills heading",
			document: "Experience\nBuilt a service.\n\nEducation\nBS CS",
			want:     []string{},
		},
		{
			name:     "heading without colon or line break",
			document: "Skills Go Python",
			want:     []string{},
		},
		{
			name:     "all delimiters and duplicates",
			document: "Skills: Go, Python - Docker\nKubernetes: Helm, Go\n\nEducation\nBS",
			want:     []string{"Go", "Python", "Docker", "Kubernetes", "Helm"},
		},
		{
			name:     "block runs to end without blank line",
			document: "Skills\nGo\nRust",
			want:     []string{"Go", "Rust"},
		},
		{
			name:     "blank line with spaces ends the block",
			document: "Skills\nGo\n  \t\nEducation",
			want:     []string{"Go"},
		},
		{
			name:     "malformed lines dropped",
			document: "Skills\n - , :\nGo\n",
			want:     []string{"Go"},
		},
		{
			name:     "bullets trimmed",
			document: "Skills:\n• Go\n• Rust\n* SQL",
			want:     []string{"Go", "Rust", "SQL"},
		},
		{
			name:     "uppercase ignored when case sensitive",
			document: "SKILLS:\nGo",
			want:     []string{},
		},
		{
			name:     "uppercase matched when case insensitive",
			document: "SKILLS:\nGo",
			opts:     []Option{WithCaseInsensitive()},
			want:     []string{"Go"},
		},
		{
			name:     "compound heading",
			document: "Technical Skills:\nGo, gRPC\n\nProjects",
			want:     []string{"Go", "gRPC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := New(tt.opts...).ExtractSkills(tt.document)
			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
