package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
)

type docxParser struct{}

func (docxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".docx")
}

// Parse reads word/document.xml and keeps paragraphs, line breaks and
// bold/italic runs. Everything else in the document model is dropped.
func (docxParser) Parse(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return docxBody(rc)
	}
	return "", errors.New("document.xml not found in DOCX")
}

type docxRun struct {
	bold, italic bool
	text         strings.Builder
}

func (r *docxRun) html() string {
	s := html.EscapeString(r.text.String())
	if s == "" {
		return ""
	}
	if r.italic {
		s = "<em>" + s + "</em>"
	}
	if r.bold {
		s = "<strong>" + s + "</strong>"
	}
	return s
}

func docxBody(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		out   strings.Builder
		para  strings.Builder
		run   *docxRun
		inRPr bool
		inT   bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para.Reset()
			case "r":
				run = &docxRun{}
			case "rPr":
				inRPr = true
			case "b":
				if inRPr && run != nil && !docxOff(t) {
					run.bold = true
				}
			case "i":
				if inRPr && run != nil && !docxOff(t) {
					run.italic = true
				}
			case "t":
				inT = true
			case "tab":
				if run != nil {
					run.text.WriteByte(' ')
				}
			case "br":
				para.WriteString(flushRun(run))
				para.WriteString("<br>")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "rPr":
				inRPr = false
			case "t":
				inT = false
			case "r":
				para.WriteString(flushRun(run))
				run = nil
			case "p":
				if strings.TrimSpace(para.String()) != "" {
					out.WriteString("<p>" + para.String() + "</p>")
				}
				para.Reset()
			}
		case xml.CharData:
			if inT && run != nil {
				run.text.Write(t)
			}
		}
	}
	return out.String(), nil
}

// flushRun renders the pending text of run and empties it.
func flushRun(run *docxRun) string {
	if run == nil {
		return ""
	}
	s := run.html()
	run.text.Reset()
	return s
}

// docxOff reports an explicit w:val="false" or "0" on a toggle property.
func docxOff(t xml.StartElement) bool {
	for _, a := range t.Attr {
		if a.Name.Local == "val" {
			return a.Value == "false" || a.Value == "0"
		}
	}
	return false
}
