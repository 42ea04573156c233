package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/api/apitest"
)

func newTestClient(t *testing.T) (*api.Client, *apitest.Backend) {
	t.Helper()
	b := apitest.NewBackend()
	t.Cleanup(b.Close)
	c := api.NewClient(api.Options{BaseURL: b.URL(), UserID: 1, HTTPTimeout: 2 * time.Second})
	return c, b
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewClientAppendsPrefix(t *testing.T) {
	c := api.NewClient(api.Options{BaseURL: "http://example.test/"})
	assert.Equal(t, "http://example.test/api/v1", c.BaseURL())

	c = api.NewClient(api.Options{BaseURL: "http://example.test/api/v1"})
	assert.Equal(t, "http://example.test/api/v1", c.BaseURL())
}

func TestCreateThenListIncludesDocument(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	inputs := []api.DocumentInput{
		{Title: "Draft A", Type: api.TypeArticle, Content: "<p>x</p>", UserID: 1},
		{Title: "Long Form", Type: api.TypeBook, Content: "", UserID: 1, Tags: "fiction"},
		{Title: "Someone else", Type: api.TypeArticle, Content: "hi", UserID: 2},
	}
	for _, in := range inputs {
		created, err := c.CreateDocument(ctx, in)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		docs, err := c.ListDocuments(ctx, in.UserID, api.DocumentFilter{})
		require.NoError(t, err)
		var found bool
		for _, d := range docs {
			if d.ID == created.ID && d.Title == in.Title && d.Type == in.Type && d.UserID == in.UserID {
				found = true
			}
		}
		assert.True(t, found, "document %q missing from listing", in.Title)
	}
}

func TestCreateThenSnapshotStartsAtVersionOne(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	doc, err := c.CreateDocument(ctx, api.DocumentInput{Title: "Draft A", Type: api.TypeArticle, Content: "<p>x</p>", UserID: 1})
	require.NoError(t, err)
	require.NotZero(t, doc.ID)

	snap, err := c.CreateSnapshot(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.VersionNumber)

	snap, err = c.CreateSnapshot(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.VersionNumber)

	versions, err := c.ListVersions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)
}

func TestCreateDocumentValidatesBeforeSending(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	_, err := c.CreateDocument(ctx, api.DocumentInput{Title: "", Type: "POEM", UserID: 1})
	require.Error(t, err)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "title")
	assert.Contains(t, verrs, "type")
	assert.Zero(t, b.Requests())
}

func TestListDocumentsOmitsEmptyFilters(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	_, err := c.ListDocuments(ctx, 7, api.DocumentFilter{Query: "  "})
	require.NoError(t, err)
	assert.Equal(t, "userId=7", b.LastQuery())

	_, err = c.ListDocuments(ctx, 7, api.DocumentFilter{Query: "draft", Tag: "go"})
	require.NoError(t, err)
	assert.Equal(t, "query=draft&tag=go&userId=7", b.LastQuery())
}

func TestRequestErrorCarriesBodyText(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	b.FailNext(http.StatusInternalServerError, "database is down")
	_, err := c.ListSnippets(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "database is down", err.Error())
	assert.True(t, api.IsStatus(err, http.StatusInternalServerError))

	b.FailNext(http.StatusBadGateway, "")
	_, err = c.ListSnippets(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestNotFoundIsClassified(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.CreateSnapshot(testCtx(t), 999)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.NewClient(api.Options{BaseURL: url, HTTPTimeout: time.Second})
	_, err := c.ListDocuments(testCtx(t), 1, api.DocumentFilter{})
	require.Error(t, err)
	assert.True(t, api.IsUnreachable(err))
}

func TestRequestIDHeaderIsSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode([]api.Snippet{})
	}))
	defer srv.Close()

	c := api.NewClient(api.Options{BaseURL: srv.URL})
	_, err := c.ListSnippets(testCtx(t), 1)
	require.NoError(t, err)
	assert.Len(t, got, 36)
}

func TestSnippetsRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	_, err := c.CreateSnippet(ctx, api.SnippetInput{Title: "idea", Content: "a note", UserID: 1})
	require.NoError(t, err)
	_, err = c.CreateSnippet(ctx, api.SnippetInput{Title: "later", Content: "b", UserID: 1})
	require.NoError(t, err)

	snips, err := c.ListSnippets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, snips, 2)
	assert.Equal(t, "later", snips[0].Title)

	_, err = c.CreateSnippet(ctx, api.SnippetInput{UserID: 1})
	assert.Error(t, err)
}

func TestWritingTools(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	b.SpellSuggestions = []string{}
	sc, err := c.SpellCheck(ctx, "Ths is a tst")
	require.NoError(t, err)
	assert.Empty(t, sc.Suggestions)

	seo, err := c.SEOSuggestions(ctx, "short", "tiny content")
	require.NoError(t, err)
	assert.Equal(t, 2, seo.WordCount)
	assert.NotEmpty(t, seo.Suggestions)

	ai, err := c.AIVerify(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, "MOCKED", ai.Provider)
}

func TestExportDecodesPayload(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	doc, err := c.CreateDocument(ctx, api.DocumentInput{Title: "My Post", Type: api.TypeArticle, Content: "body", UserID: 1})
	require.NoError(t, err)

	res, err := c.ExportDocument(ctx, doc.ID, api.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "my-post.md", res.FileName)
	raw, err := res.Decode()
	require.NoError(t, err)
	assert.Equal(t, "# My Post\n\nbody", string(raw))

	_, err = c.ExportDocument(ctx, doc.ID, "DOCX")
	assert.Error(t, err)
}

func TestPublishChannels(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	doc, err := c.CreateDocument(ctx, api.DocumentInput{Title: "Hello World", Type: api.TypeArticle, Content: "x", UserID: 1})
	require.NoError(t, err)

	m, err := c.PublishMedium(ctx, api.MediumRequest{DocumentID: doc.ID, Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", m.Channel)

	k, err := c.PublishKDP(ctx, api.KDPRequest{DocumentID: doc.ID, Keywords: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "READY_FOR_UPLOAD", k.Status)

	_, err = c.PublishKDP(ctx, api.KDPRequest{Keywords: []string{"a"}})
	assert.Error(t, err)

	w, err := c.PublishWriteIt(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "/blog/hello-world-1", w.ExternalURL)

	posts, err := c.ListBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	post, err := c.GetBlogPost(ctx, posts[0].WriteItSlug)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, post.ID)
}

func TestParseHelpers(t *testing.T) {
	typ, err := api.ParseDocumentType("book")
	require.NoError(t, err)
	assert.Equal(t, api.TypeBook, typ)
	assert.Equal(t, "Untitled Book", typ.DefaultTitle())
	assert.Equal(t, "Untitled Article", api.TypeArticle.DefaultTitle())
	_, err = api.ParseDocumentType("poem")
	assert.Error(t, err)

	f, err := api.ParseExportFormat("md")
	require.NoError(t, err)
	assert.Equal(t, api.FormatMarkdown, f)
}

func TestPublishPassesListsThrough(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	doc, err := c.CreateDocument(ctx, api.DocumentInput{Title: "Many Tags", Type: api.TypeBook, Content: "x", UserID: 1})
	require.NoError(t, err)
	before := b.Requests()

	tags := []string{"go", "cli", "tui", "writing", "books", "medium", "drafts"}
	m, err := c.PublishMedium(ctx, api.MediumRequest{DocumentID: doc.ID, Tags: tags})
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", m.Channel)

	_, err = c.PublishKDP(ctx, api.KDPRequest{
		DocumentID:  doc.ID,
		Description: strings.Repeat("long ", 1000),
		Keywords:    tags,
		Categories:  []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	assert.Equal(t, before+2, b.Requests())
}

func TestBookChaptersAndSections(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	book, err := c.CreateDocument(ctx, api.DocumentInput{Title: "Novel", Type: api.TypeBook, UserID: 1})
	require.NoError(t, err)

	_, err = c.ReorderChapters(ctx, book.ID, []api.ChapterPosition{{ChapterID: 1, Position: 1}})
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	one, err := c.CreateChapter(ctx, book.ID, api.ChapterInput{Title: "Opening", Position: 1})
	require.NoError(t, err)
	two, err := c.CreateChapter(ctx, book.ID, api.ChapterInput{Title: "Middle", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, book.ID, two.DocumentID)

	before := b.Requests()
	_, err = c.CreateChapter(ctx, book.ID, api.ChapterInput{Position: 3})
	require.Error(t, err)
	_, err = c.ReorderChapters(ctx, book.ID, nil)
	require.Error(t, err)
	_, err = c.ReorderChapters(ctx, book.ID, []api.ChapterPosition{{Position: 1}})
	require.Error(t, err)
	assert.Equal(t, before, b.Requests())

	chs, err := c.ReorderChapters(ctx, book.ID, []api.ChapterPosition{
		{ChapterID: one.ID, Position: 2},
		{ChapterID: two.ID, Position: 1},
	})
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "Middle", chs[0].Title)
	assert.Equal(t, "Opening", chs[1].Title)

	listed, err := c.ListChapters(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, chs, listed)

	_, err = c.CreateSection(ctx, one.ID, api.SectionInput{Title: "Later", Content: "<p>b</p>", Position: 2})
	require.NoError(t, err)
	_, err = c.CreateSection(ctx, one.ID, api.SectionInput{Title: "First", Content: "<p>a</p>", Position: 1})
	require.NoError(t, err)
	secs, err := c.ListSections(ctx, one.ID)
	require.NoError(t, err)
	require.Len(t, secs, 2)
	assert.Equal(t, "First", secs[0].Title)
	assert.Equal(t, one.ID, secs[0].ChapterID)

	_, err = c.CreateSection(ctx, 999, api.SectionInput{Title: "Orphan"})
	assert.True(t, api.IsNotFound(err))
}

func TestMediaAttachments(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testCtx(t)

	doc, err := c.CreateDocument(ctx, api.DocumentInput{Title: "Illustrated", Type: api.TypeArticle, UserID: 1})
	require.NoError(t, err)

	media, err := c.ListMedia(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, media)

	m, err := c.AddMedia(ctx, doc.ID, api.MediaInput{FileName: "cover.png", URL: "https://cdn.test/cover.png", MimeType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, m.DocumentID)

	_, err = c.AddMedia(ctx, doc.ID, api.MediaInput{FileName: "missing-url.png"})
	assert.Error(t, err)

	media, err = c.ListMedia(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, "cover.png", media[0].FileName)
}

func TestDropInSnippetReadsPlainText(t *testing.T) {
	c, b := newTestClient(t)
	ctx := testCtx(t)

	msg, err := c.DropInSnippet(ctx, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, "Snippet 3 is ready to be inserted into document 8", msg)

	before := b.Requests()
	_, err = c.DropInSnippet(ctx, 0, 8)
	assert.Error(t, err)
	assert.Equal(t, before, b.Requests())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"quoted reply"`))
	}))
	defer srv.Close()
	msg, err = api.NewClient(api.Options{BaseURL: srv.URL}).DropInSnippet(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "quoted reply", msg)
}
