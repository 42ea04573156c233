package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/api/apitest"
	"github.com/KaramelBytes/writeit-cli/internal/session"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

func newTestApp(t *testing.T, inEditor bool) (*App, *apitest.Backend, *store.PrefsStore) {
	t.Helper()
	b := apitest.NewBackend()
	t.Cleanup(b.Close)
	dir := t.TempDir()
	prefs := store.NewPrefsStore(dir)
	c := api.NewClient(api.Options{BaseURL: b.URL(), UserID: 1, HTTPTimeout: 2 * time.Second})
	a := NewApp(context.Background(), Options{
		Client:        c,
		UserID:        1,
		Drafts:        store.NewMemoryStore(dir),
		Prefs:         prefs,
		ExportDir:     dir,
		StartInEditor: inEditor,
	})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, b, prefs
}

// collect runs cmd and any batched commands, returning messages of type T.
func collect[T any](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f5":
		return tea.KeyMsg{Type: tea.KeyF5}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListOpensEditor(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	for _, m := range collect[listDoneMsg](a.Init()) {
		a.Update(m)
	}
	assert.True(t, a.list.view.Loaded())

	_, cmd := a.Update(key("b"))
	msgs := collect[switchViewMsg](cmd)
	require.Len(t, msgs, 1)
	a.Update(msgs[0])
	assert.Equal(t, editorView, a.state)
	assert.Equal(t, "Untitled Book", a.editor.title.Value())
	assert.Contains(t, a.View(), "Book editor")
}

func TestEditorSaveThenSnapshot(t *testing.T) {
	a, b, _ := newTestApp(t, true)
	e := a.editor
	e.body.SetValue("<p>hello world</p>")

	_, cmd := a.Update(key("ctrl+s"))
	done := collect[editorDoneMsg](cmd)
	require.Len(t, done, 1)
	require.NoError(t, done[0].err)
	a.Update(done[0])
	assert.Equal(t, session.StateSaved, e.sess.State())
	require.Len(t, b.Documents(), 1)
	assert.Equal(t, "<p>hello world</p>", b.Documents()[0].Content)

	_, cmd = a.Update(key("f5"))
	done = collect[editorDoneMsg](cmd)
	require.Len(t, done, 1)
	require.NoError(t, done[0].err)
	assert.Equal(t, "Snapshot saved as version 1.", e.sess.Status())
}

func TestEditorSpellCheckFillsOutput(t *testing.T) {
	a, b, _ := newTestApp(t, true)
	b.SpellSuggestions = []string{}
	_, cmd := a.Update(key("f2"))
	done := collect[editorDoneMsg](cmd)
	require.Len(t, done, 1)
	a.Update(done[0])
	assert.Contains(t, a.editor.output.View(), session.MsgNoIssues)
}

func TestEditorUnsavedSnapshotMakesNoRequest(t *testing.T) {
	a, b, _ := newTestApp(t, true)
	_, cmd := a.Update(key("f5"))
	done := collect[editorDoneMsg](cmd)
	require.Len(t, done, 1)
	assert.ErrorIs(t, done[0].err, session.ErrNotSaved)
	assert.Zero(t, b.Requests())
	assert.Equal(t, session.MsgSaveFirst, a.editor.sess.Status())
}

func TestEditorEscReturnsToList(t *testing.T) {
	a, _, _ := newTestApp(t, true)
	_, cmd := a.Update(key("esc"))
	msgs := collect[switchViewMsg](cmd)
	require.Len(t, msgs, 1)
	a.Update(msgs[0])
	assert.Equal(t, listView, a.state)
}

func TestThemeTogglePersists(t *testing.T) {
	a, _, prefs := newTestApp(t, false)
	assert.Equal(t, store.ThemeLight, a.styles.theme)
	a.Update(key("ctrl+t"))
	assert.Equal(t, store.ThemeDark, a.styles.theme)
	assert.Equal(t, store.ThemeDark, prefs.Theme(store.ThemeLight))
}

func TestListSearchParsesTag(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	l := a.list
	l.Update(key("/"))
	assert.Equal(t, searchMode, l.mode)
	l.input.SetValue("#go")
	cmd := l.Update(key("enter"))
	for _, m := range collect[listDoneMsg](cmd) {
		l.Update(m)
	}
	assert.Equal(t, browseMode, l.mode)
	assert.Equal(t, api.DocumentFilter{Tag: "go"}, l.view.Filter())
}

func TestListAddSnippet(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	l := a.list
	l.Update(key("a"))
	l.input.SetValue("idea")
	l.Update(key("enter"))
	assert.Equal(t, snippetBodyMode, l.mode)
	l.input.SetValue("remember this")
	cmd := l.Update(key("enter"))
	done := collect[listDoneMsg](cmd)
	require.Len(t, done, 1)
	require.NoError(t, done[0].err)
	require.Len(t, l.view.Snippets(), 1)
	assert.Equal(t, "idea", l.view.Snippets()[0].Title)
}

func TestLineSelection(t *testing.T) {
	text := "one\ntwo\nthree"
	assert.Equal(t, session.Selection{Start: 0, End: 3}, lineSelection(text, 0))
	assert.Equal(t, session.Selection{Start: 4, End: 7}, lineSelection(text, 1))
	assert.Equal(t, session.Selection{Start: 8, End: 13}, lineSelection(text, 2))
	assert.Equal(t, session.Selection{Start: 13, End: 13}, lineSelection(text, 5))
	assert.Equal(t, session.Selection{}, lineSelection("", 0))
}

func TestHelpers(t *testing.T) {
	q, tag := parseFilter("  #fiction ")
	assert.Empty(t, q)
	assert.Equal(t, "fiction", tag)
	q, tag = parseFilter("draft notes")
	assert.Equal(t, "draft notes", q)
	assert.Empty(t, tag)

	assert.Equal(t, []string{"go", "cli"}, splitTags(" go, ,cli "))
	assert.Nil(t, splitTags(""))
}

func TestListSnapshotIgnoresCursorPastShrunkList(t *testing.T) {
	a, b, _ := newTestApp(t, false)
	c := api.NewClient(api.Options{BaseURL: b.URL(), UserID: 1, HTTPTimeout: 2 * time.Second})
	_, err := c.CreateDocument(context.Background(), api.DocumentInput{Title: "Only", Type: api.TypeArticle, UserID: 1})
	require.NoError(t, err)

	l := a.list
	for _, m := range collect[listDoneMsg](l.refresh()) {
		l.Update(m)
	}
	require.Len(t, l.view.Documents(), 1)

	l.cursor = 3
	before := b.Requests()
	assert.NotPanics(t, func() {
		assert.Nil(t, l.Update(key("s")))
	})
	assert.Equal(t, before, b.Requests())
}
