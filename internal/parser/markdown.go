package parser

import (
	"html"
	"strings"
)

type markdownParser struct{}

func (markdownParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown")
}

// Parse handles the block-level subset the editor produces itself:
// ATX headings, bullet lists, quotes and paragraphs. Inline markup is
// kept as literal text.
func (markdownParser) Parse(content []byte) (string, error) {
	text := normalizeNewlines(string(content))
	var sb strings.Builder
	var para []string
	inList := false

	flushPara := func() {
		if len(para) > 0 {
			sb.WriteString("<p>" + strings.Join(para, "<br>") + "</p>")
			para = nil
		}
	}
	closeList := func() {
		if inList {
			sb.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flushPara()
			closeList()
		case strings.HasPrefix(line, "#"):
			flushPara()
			closeList()
			level := len(line) - len(strings.TrimLeft(line, "#"))
			if level > 6 {
				level = 6
			}
			tag := "h" + string(rune('0'+level))
			sb.WriteString("<" + tag + ">" + html.EscapeString(strings.TrimSpace(line[level:])) + "</" + tag + ">")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			flushPara()
			if !inList {
				sb.WriteString("<ul>")
				inList = true
			}
			sb.WriteString("<li>" + html.EscapeString(strings.TrimSpace(line[2:])) + "</li>")
		case strings.HasPrefix(line, "> "):
			flushPara()
			closeList()
			sb.WriteString("<blockquote>" + html.EscapeString(strings.TrimSpace(line[2:])) + "</blockquote>")
		default:
			closeList()
			para = append(para, html.EscapeString(line))
		}
	}
	flushPara()
	closeList()
	return sb.String(), nil
}
