package document

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	// Paragraph ends, breaks and tabs carry the layout the section scan
	// relies on. A self-closing paragraph is an empty line.
	docxLineBreaks = regexp.MustCompile(`</w:p>|<w:(?:p|br|cr)\b[^>]*/>`)
	docxTabs       = regexp.MustCompile(`<w:tab\b[^>]*/>`)
	xmlTag         = regexp.MustCompile(`<[^>]*>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLText(doc.Editable().GetContent()), nil
}

// docxXMLText flattens WordprocessingML into plain text.
func docxXMLText(content string) string {
	text := docxLineBreaks.ReplaceAllString(content, "\n")
	text = docxTabs.ReplaceAllString(text, "\t")
	text = xmlTag.ReplaceAllString(text, "")
	return strings.TrimSpace(html.UnescapeString(text))
}
