package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLFormatter(t *testing.T) {
	tests := []struct {
		name  string
		buf   string
		sel   Selection
		cmd   FormatCommand
		value string
		want  string
	}{
		{"italic", "a b c", Selection{2, 3}, FormatItalic, "", "a <em>b</em> c"},
		{"underline", "x", Selection{0, 1}, FormatUnderline, "", "<u>x</u>"},
		{"heading default", "Title", Selection{0, 5}, FormatHeading, "", "<h2>Title</h2>"},
		{"heading level", "Title", Selection{0, 5}, FormatHeading, "3", "<h3>Title</h3>"},
		{"bullets", "one\n\ntwo", Selection{0, 8}, FormatBulletList, "", "<ul><li>one</li><li>two</li></ul>"},
		{"numbered caret", "", Selection{0, 0}, FormatNumberedList, "", "<ol><li></li></ol>"},
		{"quote", "said", Selection{0, 4}, FormatQuote, "", "<blockquote>said</blockquote>"},
		{"link", "site", Selection{0, 4}, FormatLink, "https://example.com", `<a href="https://example.com">site</a>`},
		{"link caret", "", Selection{0, 0}, FormatLink, "https://example.com", `<a href="https://example.com">https://example.com</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLFormatter{}.ApplyFormat(tt.buf, tt.sel, tt.cmd, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTMLFormatterRejects(t *testing.T) {
	f := HTMLFormatter{}
	_, err := f.ApplyFormat("abc", Selection{2, 1}, FormatBold, "")
	assert.Error(t, err)
	_, err = f.ApplyFormat("abc", Selection{0, 3}, FormatHeading, "7")
	assert.Error(t, err)
	_, err = f.ApplyFormat("abc", Selection{0, 3}, FormatLink, " ")
	assert.Error(t, err)
	out, err := f.ApplyFormat("abc", Selection{0, 3}, "strike", "")
	assert.Error(t, err)
	assert.Equal(t, "abc", out)
}
