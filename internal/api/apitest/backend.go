// Package apitest provides an in-memory stand-in for the Write It backend,
// served over httptest for client, session and command tests.
package apitest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

// Backend mimics the REST contract closely enough for round-trip tests.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	nextID    int64
	docs      map[int64]*api.Document
	versions  map[int64][]api.DocumentVersion
	snippets  []api.Snippet
	partID    int64
	chapters  map[int64][]api.Chapter
	sections  map[int64][]api.Section
	media     map[int64][]api.MediaFile
	failNext  []failure
	requests  atomic.Int64
	lastQuery string

	// SpellSuggestions, when non-nil, replaces the built-in spell-check rules.
	SpellSuggestions []string
}

type failure struct {
	status int
	body   string
}

// NewBackend starts a server; it is closed via t.Cleanup by callers.
func NewBackend() *Backend {
	b := &Backend{
		docs:     make(map[int64]*api.Document),
		versions: make(map[int64][]api.DocumentVersion),
		chapters: make(map[int64][]api.Chapter),
		sections: make(map[int64][]api.Section),
		media:    make(map[int64][]api.MediaFile),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/documents", b.listDocuments)
	mux.HandleFunc("POST /api/v1/documents", b.createDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}", b.getDocument)
	mux.HandleFunc("PUT /api/v1/documents/{id}", b.updateDocument)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", b.deleteDocument)
	mux.HandleFunc("POST /api/v1/documents/{id}/snapshots", b.snapshot)
	mux.HandleFunc("GET /api/v1/documents/{id}/versions", b.listVersions)
	mux.HandleFunc("GET /api/v1/documents/{id}/export", b.export)
	mux.HandleFunc("GET /api/v1/documents/{id}/chapters", b.listChapters)
	mux.HandleFunc("POST /api/v1/documents/{id}/chapters", b.createChapter)
	mux.HandleFunc("PATCH /api/v1/documents/{id}/chapters/reorder", b.reorderChapters)
	mux.HandleFunc("GET /api/v1/chapters/{id}/sections", b.listSections)
	mux.HandleFunc("POST /api/v1/chapters/{id}/sections", b.createSection)
	mux.HandleFunc("GET /api/v1/documents/{id}/media", b.listMedia)
	mux.HandleFunc("POST /api/v1/documents/{id}/media", b.addMedia)
	mux.HandleFunc("GET /api/v1/snippets", b.listSnippets)
	mux.HandleFunc("POST /api/v1/snippets", b.createSnippet)
	mux.HandleFunc("POST /api/v1/snippets/{id}/drop-in/{documentId}", b.dropIn)
	mux.HandleFunc("POST /api/v1/writing-tools/spell-check", b.spellCheck)
	mux.HandleFunc("POST /api/v1/writing-tools/seo-suggestions", b.seo)
	mux.HandleFunc("POST /api/v1/writing-tools/ai-verify", b.aiVerify)
	mux.HandleFunc("POST /api/v1/publishing/{channel}", b.publish)
	mux.HandleFunc("GET /api/v1/blog/posts", b.listPosts)
	mux.HandleFunc("GET /api/v1/blog/posts/{slug}", b.getPost)

	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		b.mu.Lock()
		if len(b.failNext) > 0 {
			f := b.failNext[0]
			b.failNext = b.failNext[1:]
			b.mu.Unlock()
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) Close() { b.Server.Close() }

// Requests is the number of HTTP requests received so far.
func (b *Backend) Requests() int64 { return b.requests.Load() }

// LastQuery is the raw query string of the last document listing.
func (b *Backend) LastQuery() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery
}

// FailNext makes the next request answer with status and body.
func (b *Backend) FailNext(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = append(b.failNext, failure{status: status, body: body})
}

// Documents returns a copy of the stored documents ordered by id.
func (b *Backend) Documents() []api.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]api.Document, 0, len(b.docs))
	for _, d := range b.docs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"status": 404, "error": "Not Found", "path": r.URL.Path})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func countWords(s string) int { return len(strings.Fields(s)) }

func readingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / 200))
}

func (b *Backend) listDocuments(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "userId is required"})
		return
	}
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	tag := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tag")))
	b.mu.Lock()
	b.lastQuery = r.URL.RawQuery
	b.mu.Unlock()
	out := []api.Document{}
	for _, d := range b.Documents() {
		if d.UserID != userID {
			continue
		}
		switch {
		case query != "":
			if !strings.Contains(strings.ToLower(d.Title), query) {
				continue
			}
		case tag != "":
			if !strings.Contains(strings.ToLower(d.Tags), tag) {
				continue
			}
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) decodeDocument(w http.ResponseWriter, r *http.Request) (api.DocumentInput, bool) {
	var in api.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" || !in.Type.Valid() || in.UserID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "error": "Bad Request"})
		return in, false
	}
	return in, true
}

func apply(d *api.Document, in api.DocumentInput) {
	now := time.Now().UTC()
	d.Title = in.Title
	d.Type = in.Type
	d.Content = in.Content
	d.UserID = in.UserID
	d.Tags = in.Tags
	d.Category = in.Category
	d.WordCount = countWords(in.Content)
	d.ReadingTimeMinutes = readingTime(d.WordCount)
	if d.CreatedAt == nil {
		d.CreatedAt = &now
	}
	d.UpdatedAt = &now
}

func (b *Backend) createDocument(w http.ResponseWriter, r *http.Request) {
	in, ok := b.decodeDocument(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	b.nextID++
	d := &api.Document{ID: b.nextID}
	apply(d, in)
	b.docs[d.ID] = d
	out := *d
	b.mu.Unlock()
	w.Header().Set("Location", fmt.Sprintf("/api/v1/documents/%d", out.ID))
	writeJSON(w, http.StatusCreated, out)
}

func (b *Backend) lookup(r *http.Request) (*api.Document, bool) {
	id, ok := pathID(r)
	if !ok {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.docs[id]
	return d, ok
}

func (b *Backend) getDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	out := *d
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) updateDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	in, ok := b.decodeDocument(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	apply(d, in)
	out := *d
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) deleteDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	delete(b.docs, d.ID)
	delete(b.versions, d.ID)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) snapshot(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	now := time.Now().UTC()
	n := len(b.versions[d.ID]) + 1
	b.nextID++
	b.versions[d.ID] = append(b.versions[d.ID], api.DocumentVersion{
		ID: b.nextID, DocumentID: d.ID, VersionNumber: n, Title: d.Title, Content: d.Content, CreatedAt: &now,
	})
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, api.Snapshot{DocumentID: d.ID, VersionNumber: n})
}

func (b *Backend) listVersions(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	vs := b.versions[d.ID]
	out := make([]api.DocumentVersion, 0, len(vs))
	for i := len(vs) - 1; i >= 0; i-- {
		out = append(out, vs[i])
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

func (b *Backend) export(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	title, content := d.Title, d.Content
	b.mu.Unlock()
	safe := unsafeChars.ReplaceAllString(strings.ToLower(title), "-")
	var res api.ExportResult
	switch r.URL.Query().Get("format") {
	case "MARKDOWN":
		res = api.ExportResult{FileName: safe + ".md", MimeType: "text/markdown", ContentBase64: enc("# " + title + "\n\n" + content)}
	case "HTML":
		res = api.ExportResult{FileName: safe + ".html", MimeType: "text/html", ContentBase64: enc("<h1>" + title + "</h1>" + content)}
	case "PDF":
		res = api.ExportResult{FileName: safe + ".pdf", MimeType: "application/pdf", ContentBase64: enc("PDF export placeholder for: " + title)}
	case "EPUB":
		res = api.ExportResult{FileName: safe + ".epub", MimeType: "application/epub+zip", ContentBase64: enc("EPUB export placeholder for: " + title)}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unsupported format"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func enc(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func (b *Backend) listSnippets(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	b.mu.Lock()
	out := []api.Snippet{}
	for i := len(b.snippets) - 1; i >= 0; i-- {
		if b.snippets[i].UserID == userID {
			out = append(out, b.snippets[i])
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createSnippet(w http.ResponseWriter, r *http.Request) {
	var s api.Snippet
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil || s.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Bad Request"})
		return
	}
	b.mu.Lock()
	b.nextID++
	s.ID = b.nextID
	b.snippets = append(b.snippets, s)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, s)
}

type textBody struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (b *Backend) spellCheck(w http.ResponseWriter, r *http.Request) {
	var body textBody
	_ = json.NewDecoder(r.Body).Decode(&body)
	if b.SpellSuggestions != nil {
		writeJSON(w, http.StatusOK, api.SpellCheckResult{Suggestions: b.SpellSuggestions})
		return
	}
	text := body.Text
	out := []string{}
	if strings.Contains(text, " teh ") || strings.HasPrefix(text, "teh ") || strings.HasSuffix(text, " teh") {
		out = append(out, "Replace 'teh' with 'the'.")
	}
	if strings.Contains(text, "  ") {
		out = append(out, "Remove double spaces.")
	}
	t := strings.TrimSpace(text)
	if t != "" && !strings.HasSuffix(t, ".") && !strings.HasSuffix(t, "!") && !strings.HasSuffix(t, "?") {
		out = append(out, "Consider ending the paragraph with punctuation.")
	}
	writeJSON(w, http.StatusOK, api.SpellCheckResult{Suggestions: out})
}

func (b *Backend) seo(w http.ResponseWriter, r *http.Request) {
	var body textBody
	_ = json.NewDecoder(r.Body).Decode(&body)
	words := countWords(body.Content)
	out := []string{}
	if len(body.Title) < 20 {
		out = append(out, "Use a longer title (20-60 chars) for better discoverability.")
	}
	if words < 300 {
		out = append(out, "Add more depth; SEO content typically performs better beyond 300 words.")
	}
	if !strings.Contains(strings.ToLower(body.Content), "introduction") {
		out = append(out, "Consider adding an introduction heading for structure.")
	}
	writeJSON(w, http.StatusOK, api.SEOResult{WordCount: words, Suggestions: out})
}

func (b *Backend) aiVerify(w http.ResponseWriter, r *http.Request) {
	var body textBody
	_ = json.NewDecoder(r.Body).Decode(&body)
	out := []string{"Tone check: keep sentence length varied for readability."}
	if len(body.Text) > 500 {
		out = append(out, "Fact-check recommendation: verify all numeric claims with references.")
	}
	out = append(out, "Style check: use active voice where possible.")
	writeJSON(w, http.StatusOK, api.AIVerifyResult{Provider: "MOCKED", Suggestions: out})
}

func (b *Backend) publish(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DocumentID int64 `json:"documentId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	d, ok := b.docs[body.DocumentID]
	b.mu.Unlock()
	if !ok {
		notFound(w, r)
		return
	}
	now := time.Now().UTC()
	var res api.PublishResult
	switch r.PathValue("channel") {
	case "medium":
		res = api.PublishResult{Channel: "MEDIUM", Status: "QUEUED", ExternalURL: fmt.Sprintf("https://medium.com/@writeit/mock-%d", d.ID)}
	case "kdp":
		res = api.PublishResult{Channel: "KDP", Status: "READY_FOR_UPLOAD", ExternalURL: fmt.Sprintf("https://kdp.amazon.com/en_US/title-setup/mock-%d", d.ID)}
	case "write-it":
		b.mu.Lock()
		slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(d.Title), "-"), "-")
		if slug == "" {
			slug = "post"
		}
		d.WriteItSlug = fmt.Sprintf("%s-%d", slug, d.ID)
		d.PublishedToWriteIt = true
		d.PublishedAt = &now
		b.mu.Unlock()
		res = api.PublishResult{Channel: "WRITE_IT", Status: "PUBLISHED", ExternalURL: "/blog/" + d.WriteItSlug}
	default:
		notFound(w, r)
		return
	}
	res.GeneratedAt = now.Format(time.RFC3339)
	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) listPosts(w http.ResponseWriter, r *http.Request) {
	out := []api.Document{}
	for _, d := range b.Documents() {
		if d.PublishedToWriteIt {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	for _, d := range b.Documents() {
		if d.PublishedToWriteIt && d.WriteItSlug == slug {
			writeJSON(w, http.StatusOK, d)
			return
		}
	}
	notFound(w, r)
}
