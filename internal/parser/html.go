package parser

import (
	"strings"

	"github.com/KaramelBytes/writeit-cli/internal/content"
)

type htmlParser struct{}

func (htmlParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm")
}

func (htmlParser) Parse(b []byte) (string, error) {
	return strings.TrimSpace(content.Sanitize(string(b))), nil
}
