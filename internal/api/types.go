package api

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocumentType is the kind of long-form document.
type DocumentType string

const (
	TypeArticle DocumentType = "ARTICLE"
	TypeBook    DocumentType = "BOOK"
)

// ParseDocumentType accepts ARTICLE or BOOK in any case.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeArticle:
		return TypeArticle, nil
	case TypeBook:
		return TypeBook, nil
	}
	return "", fmt.Errorf("invalid document type: %q (use ARTICLE or BOOK)", s)
}

func (t DocumentType) Valid() bool { return t == TypeArticle || t == TypeBook }

// DefaultTitle is the title a new draft of this type starts with.
func (t DocumentType) DefaultTitle() string {
	if t == TypeBook {
		return "Untitled Book"
	}
	return "Untitled Article"
}

// Document is the server's view of an article or book. Metrics and
// publishing fields are derived by the backend.
type Document struct {
	ID                 int64        `json:"id"`
	Title              string       `json:"title"`
	Type               DocumentType `json:"type"`
	Content            string       `json:"content"`
	UserID             int64        `json:"userId"`
	WordCount          int          `json:"wordCount"`
	ReadingTimeMinutes int          `json:"readingTimeMinutes"`
	Tags               string       `json:"tags,omitempty"`
	Category           string       `json:"category,omitempty"`
	PublishedToWriteIt bool         `json:"publishedToWriteIt,omitempty"`
	WriteItSlug        string       `json:"writeItSlug,omitempty"`
	PublishedAt        *time.Time   `json:"publishedAt,omitempty"`
	CreatedAt          *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time   `json:"updatedAt,omitempty"`
}

// DocumentInput is the body for creating or replacing a document.
type DocumentInput struct {
	Title    string       `json:"title"`
	Type     DocumentType `json:"type"`
	Content  string       `json:"content"`
	UserID   int64        `json:"userId"`
	Tags     string       `json:"tags,omitempty"`
	Category string       `json:"category,omitempty"`
}

func (in DocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Type, validation.Required, validation.In(TypeArticle, TypeBook).Error("must be ARTICLE or BOOK")),
		validation.Field(&in.UserID, validation.Required),
	)
}

// DocumentFilter narrows ListDocuments. Empty fields mean no filter.
type DocumentFilter struct {
	Query string
	Tag   string
}

// Snapshot is the result of a create-snapshot call.
type Snapshot struct {
	DocumentID    int64 `json:"documentId"`
	VersionNumber int   `json:"versionNumber"`
}

// DocumentVersion is a stored snapshot of a document.
type DocumentVersion struct {
	ID            int64      `json:"id"`
	DocumentID    int64      `json:"documentId"`
	VersionNumber int        `json:"versionNumber"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Snippet is a flat note.
type Snippet struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int64  `json:"userId"`
}

type SnippetInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int64  `json:"userId"`
}

func (in SnippetInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.UserID, validation.Required),
	)
}

// Chapter orders a BOOK into parts. Position is ascending from the
// first chapter; the server does not renumber on its own.
type Chapter struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"documentId"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
}

type ChapterInput struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (in ChapterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
	)
}

// ChapterPosition moves one chapter in a reorder request. Chapters not
// named keep their position.
type ChapterPosition struct {
	ChapterID int64 `json:"chapterId"`
	Position  int   `json:"position"`
}

func (p ChapterPosition) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ChapterID, validation.Required),
	)
}

// Section is a titled block of content inside a chapter.
type Section struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapterId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Position  int    `json:"position"`
}

type SectionInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

func (in SectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
	)
}

// MediaFile is an asset attached to a document by reference.
type MediaFile struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"documentId"`
	FileName   string `json:"fileName"`
	URL        string `json:"url"`
	MimeType   string `json:"mimeType,omitempty"`
}

type MediaInput struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}

func (in MediaInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FileName, validation.Required),
		validation.Field(&in.URL, validation.Required),
	)
}

// Writing tool results. An empty Suggestions list means nothing to report.
type SpellCheckResult struct {
	Suggestions []string `json:"suggestions"`
}

type SEOResult struct {
	WordCount   int      `json:"wordCount"`
	Suggestions []string `json:"suggestions"`
}

type AIVerifyResult struct {
	Provider    string   `json:"provider"`
	Suggestions []string `json:"suggestions"`
}

// ExportFormat is a target format for document export.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "MARKDOWN"
	FormatHTML     ExportFormat = "HTML"
	FormatPDF      ExportFormat = "PDF"
	FormatEPUB     ExportFormat = "EPUB"
)

// ExportFormats lists the supported formats in display order.
var ExportFormats = []ExportFormat{FormatMarkdown, FormatHTML, FormatPDF, FormatEPUB}

func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case "MD":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatHTML, FormatPDF, FormatEPUB:
		return f, nil
	}
	return "", fmt.Errorf("invalid export format: %q (use MARKDOWN, HTML, PDF or EPUB)", s)
}

// ExportResult carries the exported file as base64.
type ExportResult struct {
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	ContentBase64 string `json:"contentBase64"`
}

// Decode returns the raw exported bytes.
func (r *ExportResult) Decode() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(r.ContentBase64)
	if err != nil {
		return nil, fmt.Errorf("decode export payload: %w", err)
	}
	return b, nil
}

// PublishResult is returned by every publishing channel.
type PublishResult struct {
	Channel     string `json:"channel"`
	Status      string `json:"status"`
	ExternalURL string `json:"externalUrl"`
	GeneratedAt string `json:"generatedAt"`
}

type MediumRequest struct {
	DocumentID   int64    `json:"documentId"`
	Tags         []string `json:"tags,omitempty"`
	CanonicalURL string   `json:"canonicalUrl,omitempty"`
}

func (r MediumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentID, validation.Required),
	)
}

type KDPRequest struct {
	DocumentID  int64    `json:"documentId"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
}

func (r KDPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentID, validation.Required),
	)
}

type writeItRequest struct {
	DocumentID int64 `json:"documentId"`
}

type textPayload struct {
	Text string `json:"text"`
}

type seoPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
