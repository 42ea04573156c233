package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/session"
	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

const (
	focusTitle = iota
	focusTags
	focusCategory
	focusBody
	focusCount
)

// editorDoneMsg reports a finished session action. reload asks the
// editor to copy every field back from the session.
type editorDoneMsg struct {
	op     string
	note   string
	err    error
	reload bool
}

var formatKeys = map[string]session.FormatCommand{
	"alt+b": session.FormatBold,
	"alt+i": session.FormatItalic,
	"alt+u": session.FormatUnderline,
	"alt+h": session.FormatHeading,
	"alt+l": session.FormatBulletList,
	"alt+o": session.FormatNumberedList,
	"alt+q": session.FormatQuote,
	"alt+k": session.FormatLink,
}

type editorModel struct {
	ctx       context.Context
	sess      *session.Session
	styles    *styles
	exportDir string

	title    textinput.Model
	tags     textinput.Model
	category textinput.Model
	body     textarea.Model
	focus    int

	output  viewport.Model
	preview bool
	busy    string
	spinner spinner.Model
	width   int
	height  int
}

func newEditorModel(ctx context.Context, sess *session.Session, st *styles, exportDir string) *editorModel {
	m := &editorModel{
		ctx:       ctx,
		sess:      sess,
		styles:    st,
		exportDir: exportDir,
		title:     textinput.New(),
		tags:      textinput.New(),
		category:  textinput.New(),
		body:      textarea.New(),
		output:    viewport.New(80, 6),
		spinner:   spinner.New(),
		focus:     focusBody,
	}
	m.title.CharLimit = 255
	m.tags.Placeholder = "comma,separated,tags"
	m.category.Placeholder = "category"
	m.body.Placeholder = "<p>Start writing...</p>"
	m.body.CharLimit = 0
	m.body.ShowLineNumbers = false
	m.spinner.Spinner = spinner.Dot

	sess.Start()
	m.load()
	m.applyFocus()
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return textarea.Blink
}

// load copies the session fields into the widgets.
func (m *editorModel) load() {
	v := m.sess.View()
	m.title.SetValue(v.Title)
	m.tags.SetValue(v.Tags)
	m.category.SetValue(v.Category)
	m.body.SetValue(v.Content)
	m.refreshOutput()
}

// push copies any widget edits into the session.
func (m *editorModel) push() {
	v := m.sess.View()
	if m.title.Value() != v.Title {
		m.sess.SetTitle(m.title.Value())
	}
	if m.tags.Value() != v.Tags {
		m.sess.SetTags(m.tags.Value())
	}
	if m.category.Value() != v.Category {
		m.sess.SetCategory(m.category.Value())
	}
	if m.body.Value() != v.Content {
		m.sess.SetContent(m.body.Value())
	}
}

func (m *editorModel) applyFocus() {
	m.title.Blur()
	m.tags.Blur()
	m.category.Blur()
	m.body.Blur()
	switch m.focus {
	case focusTitle:
		m.title.Focus()
	case focusTags:
		m.tags.Focus()
	case focusCategory:
		m.category.Focus()
	default:
		m.body.Focus()
	}
}

func (m *editorModel) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width = w
	m.height = h
	inner := max(w-4, 20)
	m.title.Width = inner - 12
	m.tags.Width = inner - 12
	m.category.Width = inner - 12
	outH := max(h/4, 4)
	bodyH := max(h-outH-12, 5)
	m.body.SetWidth(inner)
	m.body.SetHeight(bodyH)
	m.output.Width = inner
	m.output.Height = outH
	m.refreshOutput()
}

func (m *editorModel) refreshOutput() {
	width := max(m.output.Width, 20)
	if m.preview {
		md, err := m.sess.Preview()
		if err != nil {
			md = "Preview unavailable: " + err.Error()
		}
		m.output.SetContent(wordwrap.String(md, width))
		return
	}
	lines := m.sess.ToolOutput()
	m.output.SetContent(wordwrap.String(strings.Join(lines, "\n"), width))
}

func (m *editorModel) run(op string, reload bool, fn func() (string, error)) tea.Cmd {
	m.push()
	m.busy = op
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		note, err := fn()
		return editorDoneMsg{op: op, note: note, err: err, reload: reload}
	})
}

func (m *editorModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case editorDoneMsg:
		if errors.Is(msg.err, session.ErrStale) {
			return nil
		}
		m.busy = ""
		if msg.reload {
			m.load()
		} else {
			m.refreshOutput()
		}
		if msg.note != "" {
			return status(msg.note)
		}
		return nil
	case spinner.TickMsg:
		if m.busy == "" {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if cmd, ok := m.handleKey(msg); ok {
			return cmd
		}
	}
	return m.forward(msg)
}

// handleKey runs editor actions. It reports false for keys that belong
// to the focused widget.
func (m *editorModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if cmd, ok := formatKeys[key]; ok {
		return m.format(cmd), true
	}
	ctx := m.ctx
	switch key {
	case "esc":
		m.push()
		return switchTo(listView, ""), true
	case "tab":
		m.focus = (m.focus + 1) % focusCount
		m.applyFocus()
		return nil, true
	case "shift+tab":
		m.focus = (m.focus + focusCount - 1) % focusCount
		m.applyFocus()
		return nil, true
	case "ctrl+s":
		return m.run("save", false, func() (string, error) {
			_, err := m.sess.Save(ctx)
			return "", err
		}), true
	case "alt+s":
		return m.run("update", false, func() (string, error) {
			_, err := m.sess.Update(ctx)
			return "", err
		}), true
	case "f2":
		return m.run("spell", false, func() (string, error) {
			_, err := m.sess.SpellCheck(ctx)
			return "", err
		}), true
	case "f3":
		return m.run("seo", false, func() (string, error) {
			_, err := m.sess.SEO(ctx)
			return "", err
		}), true
	case "f4":
		return m.run("ai", false, func() (string, error) {
			_, err := m.sess.AIVerify(ctx)
			return "", err
		}), true
	case "f5":
		return m.run("snapshot", false, func() (string, error) {
			_, err := m.sess.Snapshot(ctx)
			return "", err
		}), true
	case "f6":
		m.preview = false
		return m.run("export", false, m.export), true
	case "f7":
		m.preview = false
		return m.run("publish", false, func() (string, error) {
			_, err := m.sess.PublishWriteIt(ctx)
			return "", err
		}), true
	case "f8":
		m.preview = false
		tags := splitTags(m.tags.Value())
		return m.run("publish", false, func() (string, error) {
			_, err := m.sess.PublishMedium(ctx, tags, "")
			return "", err
		}), true
	case "ctrl+p":
		m.push()
		m.preview = !m.preview
		m.refreshOutput()
		return nil, true
	case "f9":
		return m.run("draft", false, func() (string, error) {
			return "", m.sess.SaveDraftMemory()
		}), true
	case "f10":
		return m.run("restore", true, func() (string, error) {
			m.sess.RestoreDraftMemory()
			return "", nil
		}), true
	case "ctrl+y":
		out := m.sess.ToolOutput()
		if len(out) == 0 {
			return status("Nothing to copy"), true
		}
		if err := clipboard.WriteAll(strings.Join(out, "\n")); err != nil {
			return status("Clipboard unavailable: " + err.Error()), true
		}
		return status("Tool output → clipboard"), true
	}
	return nil, false
}

func (m *editorModel) export() (string, error) {
	res, err := m.sess.Export(m.ctx, api.FormatMarkdown)
	if err != nil {
		return "", err
	}
	raw, err := res.Decode()
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.exportDir, utils.SafeFileName(res.FileName, "export.md"))
	if err := utils.SafeWriteFile(path, raw); err != nil {
		return "", err
	}
	return "Saved " + path, nil
}

// format applies cmd to the line under the cursor.
func (m *editorModel) format(cmd session.FormatCommand) tea.Cmd {
	m.push()
	var value string
	if cmd == session.FormatLink {
		href, err := clipboard.ReadAll()
		if err != nil || strings.TrimSpace(href) == "" {
			return status("Copy a URL to the clipboard first")
		}
		value = strings.TrimSpace(href)
	}
	sel := lineSelection(m.body.Value(), m.body.Line())
	if err := m.sess.ApplyFormat(sel, cmd, value); err != nil {
		return status(err.Error())
	}
	m.body.SetValue(m.sess.View().Content)
	m.refreshOutput()
	return nil
}

// lineSelection returns the byte range of the given line.
func lineSelection(text string, row int) session.Selection {
	start := 0
	for i := 0; i < row; i++ {
		j := strings.IndexByte(text[start:], '\n')
		if j < 0 {
			return session.Selection{Start: len(text), End: len(text)}
		}
		start += j + 1
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return session.Selection{Start: start, End: len(text)}
	}
	return session.Selection{Start: start, End: start + end}
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (m *editorModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusTags:
		m.tags, cmd = m.tags.Update(msg)
	case focusCategory:
		m.category, cmd = m.category.Update(msg)
	default:
		m.body, cmd = m.body.Update(msg)
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.push()
		if m.preview {
			m.refreshOutput()
		}
	}
	return cmd
}

func (m *editorModel) View() string {
	st := m.styles
	v := m.sess.View()
	var b strings.Builder

	head := "Article editor"
	if v.DocType == api.TypeBook {
		head = "Book editor"
	}
	b.WriteString(st.Title.Render(head))
	meta := fmt.Sprintf("  %s · %d words · %d min read", v.State, v.Words, v.ReadingMinutes)
	if v.LastSavedID != 0 {
		meta += fmt.Sprintf(" · #%d", v.LastSavedID)
	}
	b.WriteString(st.Dim.Render(meta))
	if m.busy != "" {
		b.WriteString("  " + m.spinner.View() + " " + m.busy)
	}
	b.WriteString("\n")

	b.WriteString(st.Label.Render("Title") + m.title.View() + "\n")
	b.WriteString(st.Label.Render("Tags") + m.tags.View() + "\n")
	b.WriteString(st.Label.Render("Category") + m.category.View() + "\n")

	bodyStyle := st.Pane
	if m.focus == focusBody {
		bodyStyle = st.ActivePane
	}
	b.WriteString(bodyStyle.Render(m.body.View()) + "\n")

	label := "Tool output"
	if m.preview {
		label = "Preview"
	}
	b.WriteString(st.Header.Render(label) + "\n")
	b.WriteString(st.Pane.Render(m.output.View()) + "\n")

	statusStyle := st.Dim
	if v.State == session.StateSaveFailed {
		statusStyle = st.Error
	} else if v.State == session.StateSaved {
		statusStyle = st.Success
	}
	b.WriteString(statusStyle.Render(v.Status) + "\n")
	b.WriteString(m.help())
	return b.String()
}

func (m *editorModel) help() string {
	keys := []string{
		"ctrl+s save", "alt+s update", "f2 spell", "f3 seo", "f4 ai", "f5 snapshot", "f6 export",
		"f7 blog", "f8 medium", "f9 memory", "f10 restore", "ctrl+p preview", "ctrl+y copy", "esc back",
	}
	return wordwrap.String(helpLine(m.styles, keys), max(m.width, 40))
}
