package parser

import (
	"errors"
	"fmt"
	"html"
	"os"
	"strings"
)

// Parser turns an input file into rich content for the editor buffer.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) (string, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile selects a parser based on filename and returns HTML content.
func ParseFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	for _, p := range registry {
		if p.CanParse(path) {
			return p.Parse(data)
		}
	}
	// Fallback to plain text
	return paragraphs(string(data)), nil
}

func init() {
	Register(txtParser{})
	Register(markdownParser{})
	Register(htmlParser{})
	Register(docxParser{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported document format")

// normalizeNewlines converts CRLF/CR and collapses runs of blank lines.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

// paragraphs wraps blank-line separated blocks in <p>, escaping text.
// Single newlines inside a block become <br>.
func paragraphs(text string) string {
	text = normalizeNewlines(text)
	if text == "" {
		return ""
	}
	var sb strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(lines[i]))
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.Join(lines, "<br>"))
		sb.WriteString("</p>")
	}
	return sb.String()
}
