package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/session"
)

type listPane int

const (
	docsPane listPane = iota
	snippetsPane
)

type listMode int

const (
	browseMode listMode = iota
	searchMode
	snippetTitleMode
	snippetBodyMode
)

// listDoneMsg reports a finished list operation. Failures are already
// reflected in the view's status line.
type listDoneMsg struct {
	op  string
	err error
}

type listModel struct {
	ctx    context.Context
	view   *session.ListView
	styles *styles

	pane    listPane
	cursor  int
	mode    listMode
	input   textinput.Model
	pending string // snippet title while the body is typed
	query   string
	tag     string

	busy    bool
	spinner spinner.Model
	width   int
	height  int
}

func newListModel(ctx context.Context, v *session.ListView, st *styles) *listModel {
	in := textinput.New()
	in.CharLimit = 255
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &listModel{ctx: ctx, view: v, styles: st, input: in, spinner: sp}
}

func (m *listModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(w-20, 20)
}

func (m *listModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *listModel) refresh() tea.Cmd {
	m.busy = true
	q, tag := m.query, m.tag
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return listDoneMsg{op: "refresh", err: m.view.Refresh(m.ctx, q, tag)}
	})
}

// parseFilter splits search input into a title query or a "#tag" filter.
func parseFilter(s string) (query, tag string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return "", strings.TrimSpace(strings.TrimPrefix(s, "#"))
	}
	return s, ""
}

func (m *listModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listDoneMsg:
		m.busy = false
		m.clampCursor()
		return nil
	case spinner.TickMsg:
		if !m.busy {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if m.mode != browseMode {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return nil
}

func (m *listModel) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "tab":
		m.pane = 1 - m.pane
		m.cursor = 0
	case "r":
		return m.refresh()
	case "/":
		m.mode = searchMode
		m.input.Placeholder = "title words or #tag"
		m.input.SetValue(m.filterText())
		return m.input.Focus()
	case "esc":
		if m.query != "" || m.tag != "" {
			m.query, m.tag = "", ""
			return m.refresh()
		}
	case "n":
		return switchTo(editorView, api.TypeArticle)
	case "b":
		return switchTo(editorView, api.TypeBook)
	case "a":
		m.mode = snippetTitleMode
		m.input.Placeholder = "snippet title"
		m.input.SetValue("")
		return m.input.Focus()
	case "s":
		docs := m.view.Documents()
		if m.pane != docsPane || m.cursor >= len(docs) {
			return nil
		}
		id := docs[m.cursor].ID
		m.busy = true
		return tea.Batch(m.spinner.Tick, func() tea.Msg {
			_, err := m.view.CreateSnapshot(m.ctx, id)
			return listDoneMsg{op: "snapshot", err: err}
		})
	}
	return nil
}

func (m *listModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = browseMode
		m.input.Blur()
		return nil
	case "enter":
		val := m.input.Value()
		switch m.mode {
		case searchMode:
			m.mode = browseMode
			m.input.Blur()
			m.query, m.tag = parseFilter(val)
			m.cursor = 0
			return m.refresh()
		case snippetTitleMode:
			if strings.TrimSpace(val) == "" {
				return status("Snippet title is required")
			}
			m.pending = val
			m.mode = snippetBodyMode
			m.input.Placeholder = "snippet text"
			m.input.SetValue("")
			return nil
		case snippetBodyMode:
			m.mode = browseMode
			m.input.Blur()
			title := m.pending
			m.pending = ""
			m.busy = true
			return tea.Batch(m.spinner.Tick, func() tea.Msg {
				_, err := m.view.CreateSnippet(m.ctx, title, val)
				return listDoneMsg{op: "snippet", err: err}
			})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *listModel) filterText() string {
	if m.tag != "" {
		return "#" + m.tag
	}
	return m.query
}

func (m *listModel) clampCursor() {
	n := len(m.view.Documents())
	if m.pane == snippetsPane {
		n = len(m.view.Snippets())
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func switchTo(v viewID, t api.DocumentType) tea.Cmd {
	return func() tea.Msg { return switchViewMsg{view: v, docType: t} }
}

func (m *listModel) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("Write It"))
	if f := m.filterText(); f != "" {
		b.WriteString(st.Dim.Render("  filter: " + f))
	}
	if m.busy {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	docs := m.renderDocs()
	snips := m.renderSnippets()
	colW := max((m.width-6)/2, 20)
	left, right := st.Pane, st.Pane
	if m.pane == docsPane {
		left = st.ActivePane
	} else {
		right = st.ActivePane
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		left.Width(colW).Render(docs),
		right.Width(colW).Render(snips),
	))
	b.WriteString("\n")

	switch m.mode {
	case searchMode:
		b.WriteString(st.Label.Render("Search") + m.input.View() + "\n")
	case snippetTitleMode:
		b.WriteString(st.Label.Render("Title") + m.input.View() + "\n")
	case snippetBodyMode:
		b.WriteString(st.Label.Render("Text") + m.input.View() + "\n")
	}
	if s := m.view.Status(); s != "" {
		b.WriteString(st.Dim.Render(s) + "\n")
	}
	b.WriteString(m.help())
	return b.String()
}

func (m *listModel) renderDocs() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Header.Render("Documents") + "\n")
	docs := m.view.Documents()
	if len(docs) == 0 {
		b.WriteString(st.Dim.Render("No documents yet. Press n to write one."))
		return b.String()
	}
	for i, d := range docs {
		line := fmt.Sprintf("#%d %s · %s · %d words", d.ID, d.Title, strings.ToLower(string(d.Type)), d.WordCount)
		if m.pane == docsPane && i == m.cursor {
			b.WriteString(st.Selected.Render("> "+line) + "\n")
			continue
		}
		b.WriteString(st.Normal.Render("  "+line) + "\n")
	}
	return b.String()
}

func (m *listModel) renderSnippets() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Header.Render("Snippets") + "\n")
	snips := m.view.Snippets()
	if len(snips) == 0 {
		b.WriteString(st.Dim.Render("No snippets. Press a to add one."))
		return b.String()
	}
	for i, s := range snips {
		line := s.Title
		if m.pane == snippetsPane && i == m.cursor {
			b.WriteString(st.Selected.Render("> "+line) + "\n")
			if s.Content != "" {
				b.WriteString(st.Dim.Render("    "+s.Content) + "\n")
			}
			continue
		}
		b.WriteString(st.Normal.Render("  "+line) + "\n")
	}
	return b.String()
}

func (m *listModel) help() string {
	keys := []string{"n article", "b book", "a snippet", "s snapshot", "/ search", "r refresh", "tab pane", "ctrl+t theme", "q quit"}
	return helpLine(m.styles, keys)
}

// helpLine renders "key label" pairs as one footer line.
func helpLine(st *styles, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		key, label, _ := strings.Cut(k, " ")
		parts[i] = st.HelpKey.Render(key) + " " + st.Dim.Render(label)
	}
	return strings.Join(parts, "  ")
}
