package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const blockSelector = "p,div,li,h1,h2,h3,h4,h5,h6,blockquote,pre,tr,ul,ol,section,article"

// Safe for concurrent use once built.
var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and javascript: URLs while
// keeping ordinary formatting.
func Sanitize(html string) string {
	return ugcPolicy.Sanitize(html)
}

// PlainText returns the text projection of a rich content buffer. Block
// elements and <br> become line breaks so adjacent paragraphs do not
// merge into one word.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script,style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
