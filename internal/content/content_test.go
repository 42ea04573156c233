package content_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/writeit-cli/internal/content"
)

func TestMeasure(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		words int
		mins  int
	}{
		{"empty", "", 0, 0},
		{"whitespace", "  \n  ", 0, 0},
		{"plain", "hello world", 2, 1},
		{"paragraph", "<p>hello world</p>", 2, 1},
		{"adjacent blocks", "<p>hello</p><p>world</p>", 2, 1},
		{"line break", "hello<br>world", 2, 1},
		{"inline markup", "<p><b>one</b> <i>two</i> three</p>", 3, 1},
		{"long", "<p>" + strings.Repeat("word ", 401) + "</p>", 401, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := content.Measure(c.in)
			assert.Equal(t, c.words, got.Words)
			assert.Equal(t, c.mins, got.ReadingMinutes)
		})
	}
}

func TestPlainTextDropsScripts(t *testing.T) {
	got := content.PlainText(`<p>keep</p><script>alert("x")</script><style>p{}</style>`)
	assert.Equal(t, "keep", got)
}

func TestPlainTextKeepsParagraphs(t *testing.T) {
	got := content.PlainText("<h1>Title</h1><p>First   line.</p><ul><li>a</li><li>b</li></ul>")
	assert.Equal(t, "Title\nFirst line.\na\nb", got)
}

func TestSanitize(t *testing.T) {
	got := content.Sanitize(`<p onclick="x()">hi <a href="javascript:alert(1)">l</a></p><script>bad()</script>`)
	assert.NotContains(t, got, "onclick")
	assert.NotContains(t, got, "javascript:")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "hi")
}

func TestToMarkdown(t *testing.T) {
	md, err := content.ToMarkdown("<h2>Intro</h2><p>Some <strong>bold</strong> text.</p>")
	require.NoError(t, err)
	assert.Contains(t, md, "## Intro")
	assert.Contains(t, md, "**bold**")

	md, err = content.ToMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, md)
}
