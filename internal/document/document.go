// Package document loads résumé and job description text from local files
// or S3 objects. Plain text, PDF and DOCX are supported.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported is returned for content that is neither text, PDF nor DOCX.
var ErrUnsupported = errors.New("unsupported document format")

type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Loader reads documents from the local filesystem or, for s3:// locations,
// from an ObjectGetter.
type Loader struct {
	objects ObjectGetter
}

// NewLoader returns a Loader. objects may be nil when S3 is not configured.
func NewLoader(objects ObjectGetter) *Loader {
	return &Loader{objects: objects}
}

// HasObjects reports whether s3:// locations can be loaded.
func (l *Loader) HasObjects() bool {
	return l.objects != nil
}

// Load reads location and returns its text with line endings normalized.
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", errors.New("document location is empty")
	}

	var (
		data []byte
		err  error
	)

	if IsS3(location) {
		if l.objects == nil {
			return "", fmt.Errorf("loading %s: s3 is not configured", location)
		}
		data, err = download(ctx, l.objects, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", location, err)
	}

	text, err := Parse(location, data)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", location, err)
	}

	return text, nil
}

// Parse extracts text from data. The format is taken from the extension of
// name and falls back to content sniffing.
func Parse(name string, data []byte) (string, error) {
	format, err := Detect(name, data)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	default:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid utf-8", ErrUnsupported)
		}
		text = string(data)
	}
	if err != nil {
		return "", err
	}

	return normalizeNewlines(text), nil
}

// Detect reports the format of a document.
func Detect(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md", ".markdown":
		return FormatText, nil
	}

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF, nil
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX, nil
	case utf8.Valid(data):
		return FormatText, nil
	default:
		return "", ErrUnsupported
	}
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
