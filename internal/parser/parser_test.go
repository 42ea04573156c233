package parser_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/writeit-cli/internal/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestParseFileTXT(t *testing.T) {
	p := writeFile(t, "a.txt", "hello world\nthis is <txt>\r\n\r\n\r\nsecond")
	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "<p>hello world<br>this is &lt;txt&gt;</p><p>second</p>"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}

func TestParseFileMD(t *testing.T) {
	p := writeFile(t, "a.md", "# Title\n\nBody here\n\n- one\n- two\n\n> quoted")
	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "<h1>Title</h1><p>Body here</p><ul><li>one</li><li>two</li></ul><blockquote>quoted</blockquote>"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}

func TestParseFileHTMLIsSanitized(t *testing.T) {
	p := writeFile(t, "a.html", `<p>ok</p><script>alert(1)</script>`)
	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != "<p>ok</p>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseFileDOCX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.docx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>First &amp; foremost</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p></w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "<p>First &amp; foremost</p><p>Second</p>"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}

func TestParseFileUnknownExtensionFallsBack(t *testing.T) {
	p := writeFile(t, "notes.log", "plain")
	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != "<p>plain</p>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDocxKeepsEmphasisAndBreaks(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b.docx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte(`<w:document><w:body><w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>Bold</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> and </w:t></w:r>` +
		`<w:r><w:rPr><w:i/><w:b w:val="false"/></w:rPr><w:t>slanted</w:t><w:br/><w:t>next</w:t></w:r>` +
		`</w:p><w:p></w:p></w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	out, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "<p><strong>Bold</strong> and <em>slanted</em><br><em>next</em></p>"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}
