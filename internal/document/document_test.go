package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spigell/ats-scorer/internal/section"
)

type fakeObjects struct {
	bucket string
	key    string
	body   string
	err    error
}

func (f *fakeObjects) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>` + body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships></Relationships>`,
	}
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   []byte
		want   Format
		hasErr bool
	}{
		{name: "pdf extension", file: "cv.PDF", data: nil, want: FormatPDF},
		{name: "docx extension", file: "cv.docx", want: FormatDOCX},
		{name: "markdown", file: "jd.md", data: []byte("# Role"), want: FormatText},
		{name: "sniff pdf", file: "cv", data: []byte("%PDF-1.7 ..."), want: FormatPDF},
		{name: "sniff zip", file: "cv.bin", data: []byte("PK\x03\x04rest"), want: FormatDOCX},
		{name: "sniff text", file: "jd", data: []byte("Backend engineer"), want: FormatText},
		{name: "binary", file: "blob", data: []byte{0xff, 0xfe, 0x00, 0x81}, hasErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.file, tt.data)
			if tt.hasErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("expected ErrUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseTextNormalizesNewlines(t *testing.T) {
	got, err := Parse("cv.txt", []byte("Experience\r\nBuilt a service.\r\rSkills\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Experience\nBuilt a service.\n\nSkills\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	if _, err := Parse("cv.txt", []byte{0xff, 0xfe}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestParseBrokenPDF(t *testing.T) {
	if _, err := Parse("cv.pdf", []byte("%PDF-1.4 truncated")); err == nil {
		t.Fatal("expected error for broken pdf")
	}
}

func TestParseDocx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Experience</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Built R&amp;D tools</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go,</w:t></w:r><w:r><w:t xml:space="preserve"> SQL</w:t></w:r></w:p>`)

	got, err := Parse("cv.docx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Experience\nBuilt R&D tools\nSkills\nGo, SQL"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDocxXMLText(t *testing.T) {
	got := docxXMLText(`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>&lt;c&gt;</w:t></w:r></w:p>`)
	if got != "a\tb\n<c>" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestDocxXMLTextEmptyParagraph(t *testing.T) {
	got := docxXMLText(`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go, SQL</w:t></w:r></w:p>` +
		`<w:p w:rsidR="00AB"/>` +
		`<w:p><w:pPr><w:jc w:val="left"/></w:pPr><w:r><w:t>Education</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>BSc</w:t><w:br w:type="textWrapping"/><w:t>2015</w:t></w:r></w:p>`)

	want := "Skills\nGo, SQL\n\nEducation\nBSc\n2015"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	skills := section.ExtractSkills(got)
	if strings.Join(skills, ",") != "Go,SQL" {
		t.Fatalf("expected skills block to end at the empty paragraph, got %v", skills)
	}
}

func TestLoaderLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("Skills: Go\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewLoader(nil).Load(context.Background(), " "+path+" ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Skills: Go\n" {
		t.Fatalf("unexpected text: %q", got)
	}

	if _, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestLoaderS3(t *testing.T) {
	objects := &fakeObjects{body: "Experience\nBuilt things"}

	got, err := NewLoader(objects).Load(context.Background(), "s3://resumes/2024/cv.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Experience\nBuilt things" {
		t.Fatalf("unexpected text: %q", got)
	}
	if objects.bucket != "resumes" || objects.key != "2024/cv.txt" {
		t.Fatalf("unexpected object %s/%s", objects.bucket, objects.key)
	}
}

func TestLoaderS3Errors(t *testing.T) {
	if _, err := NewLoader(nil).Load(context.Background(), "s3://b/k"); err == nil {
		t.Fatal("expected error without s3 client")
	}

	objects := &fakeObjects{err: errors.New("access denied")}
	if _, err := NewLoader(objects).Load(context.Background(), "s3://b/k.txt"); err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected access denied, got %v", err)
	}

	if _, err := NewLoader(objects).Load(context.Background(), "s3://bucket-only"); err == nil {
		t.Fatal("expected error for missing key")
	}

	if _, err := NewLoader(objects).Load(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty location")
	}
}

func TestParseS3(t *testing.T) {
	bucket, key, err := ParseS3("S3://docs/jd/backend.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bucket != "docs" || key != "jd/backend.md" {
		t.Fatalf("unexpected split %q %q", bucket, key)
	}
	if !IsS3("S3://docs/x") || IsS3("/tmp/s3://x") {
		t.Fatalf("unexpected IsS3 result")
	}
}
