package session

import (
	"fmt"
	"html"
	"strings"
)

// FormatCommand names a formatting action on the rich-text buffer.
type FormatCommand string

const (
	FormatBold         FormatCommand = "bold"
	FormatItalic       FormatCommand = "italic"
	FormatUnderline    FormatCommand = "underline"
	FormatHeading      FormatCommand = "heading"
	FormatBulletList   FormatCommand = "bullet-list"
	FormatNumberedList FormatCommand = "numbered-list"
	FormatQuote        FormatCommand = "quote"
	FormatLink         FormatCommand = "link"
)

// Selection is a byte range in the serialized buffer. Start == End is a
// caret with nothing selected.
type Selection struct {
	Start, End int
}

// Formatter applies a command to the selected range of a rich-text
// buffer and returns the new buffer. The platform layer owns it; the
// session only relays commands.
type Formatter interface {
	ApplyFormat(buffer string, sel Selection, cmd FormatCommand, value string) (string, error)
}

// HTMLFormatter edits the serialized HTML directly.
type HTMLFormatter struct{}

func (HTMLFormatter) ApplyFormat(buffer string, sel Selection, cmd FormatCommand, value string) (string, error) {
	if sel.Start < 0 || sel.End > len(buffer) || sel.Start > sel.End {
		return buffer, fmt.Errorf("selection %d..%d out of range", sel.Start, sel.End)
	}
	before, selected, after := buffer[:sel.Start], buffer[sel.Start:sel.End], buffer[sel.End:]

	var out string
	switch cmd {
	case FormatBold:
		out = wrap("strong", selected)
	case FormatItalic:
		out = wrap("em", selected)
	case FormatUnderline:
		out = wrap("u", selected)
	case FormatHeading:
		level := strings.TrimSpace(value)
		if level == "" {
			level = "2"
		}
		if len(level) != 1 || level[0] < '1' || level[0] > '6' {
			return buffer, fmt.Errorf("invalid heading level %q", value)
		}
		out = wrap("h"+level, selected)
	case FormatBulletList:
		out = list("ul", selected)
	case FormatNumberedList:
		out = list("ol", selected)
	case FormatQuote:
		out = wrap("blockquote", selected)
	case FormatLink:
		href := strings.TrimSpace(value)
		if href == "" {
			return buffer, fmt.Errorf("link needs a URL")
		}
		text := selected
		if text == "" {
			text = html.EscapeString(href)
		}
		out = `<a href="` + html.EscapeString(href) + `">` + text + `</a>`
	default:
		return buffer, fmt.Errorf("unknown format command %q", cmd)
	}
	return before + out + after, nil
}

func wrap(tag, inner string) string {
	return "<" + tag + ">" + inner + "</" + tag + ">"
}

// list turns each non-empty line of the selection into an item.
func list(tag, selected string) string {
	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	items := 0
	for _, line := range strings.Split(selected, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString(wrap("li", line))
		items++
	}
	if items == 0 {
		sb.WriteString("<li></li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}
