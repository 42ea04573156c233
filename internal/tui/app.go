// Package tui is the interactive terminal front end: a document and
// snippet list plus the rich-text editor screen.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/session"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

type viewID int

const (
	listView viewID = iota
	editorView
)

// statusTTL is how long a transient status line stays on screen.
const statusTTL = 4 * time.Second

// Client is everything the screens need from the backend.
type Client interface {
	session.Backend
	session.Lister
}

// Options configure a TUI run.
type Options struct {
	Client      Client
	UserID      int64
	Drafts      session.DraftStore
	Prefs       *store.PrefsStore
	Theme       store.Theme
	ExportDir   string
	DefaultType api.DocumentType
	// StartInEditor opens the editor directly, as `writeit edit` does.
	StartInEditor bool
	Logger        *zap.Logger
}

type App struct {
	ctx    context.Context
	opts   Options
	log    *zap.Logger
	styles *styles

	state  viewID
	list   *listModel
	editor *editorModel

	width     int
	height    int
	statusMsg string
	statusSeq int
}

// StatusMsg shows a transient line in the app status bar.
type StatusMsg string

type clearStatusMsg struct{ seq int }

type switchViewMsg struct {
	view    viewID
	docType api.DocumentType
}

func NewApp(ctx context.Context, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if !opts.DefaultType.Valid() {
		opts.DefaultType = api.TypeArticle
	}
	theme := opts.Theme
	if opts.Prefs != nil {
		theme = opts.Prefs.Theme(theme)
	}
	st := newStyles(theme)
	a := &App{
		ctx:    ctx,
		opts:   opts,
		log:    opts.Logger,
		styles: &st,
		state:  listView,
	}
	a.list = newListModel(ctx, session.NewListView(opts.Client, opts.UserID, opts.Logger), a.styles)
	if opts.StartInEditor {
		a.openEditor(opts.DefaultType)
	}
	return a
}

func (a *App) openEditor(t api.DocumentType) {
	sess := session.New(session.Deps{
		API:    a.opts.Client,
		Drafts: a.opts.Drafts,
		UserID: a.opts.UserID,
		Logger: a.log,
	}, t)
	a.editor = newEditorModel(a.ctx, sess, a.styles, a.opts.ExportDir)
	a.editor.SetSize(a.width, a.height)
	a.state = editorView
}

func (a *App) Init() tea.Cmd {
	if a.state == editorView {
		return a.editor.Init()
	}
	return a.list.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height-1)
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height-1)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+t":
			return a, a.toggleTheme()
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil

	case switchViewMsg:
		switch msg.view {
		case listView:
			a.state = listView
			return a, a.list.Init()
		case editorView:
			a.openEditor(msg.docType)
			return a, a.editor.Init()
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case listView:
		cmd = a.list.Update(msg)
	case editorView:
		cmd = a.editor.Update(msg)
	}
	return a, cmd
}

func (a *App) toggleTheme() tea.Cmd {
	next := toggle(a.styles.theme)
	*a.styles = newStyles(next)
	if a.opts.Prefs != nil {
		if err := a.opts.Prefs.SetTheme(next); err != nil {
			a.log.Warn("persist theme", zap.Error(err))
			return status("Theme changed but could not be saved: " + err.Error())
		}
	}
	return status("Theme: " + string(next))
}

func (a *App) View() string {
	var content string
	switch a.state {
	case editorView:
		content = a.editor.View()
	default:
		content = a.list.View()
	}
	if a.statusMsg != "" {
		bar := a.styles.StatusBar.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	return content
}

func status(s string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(s) }
}

// Run starts the program on the alternate screen and blocks until exit.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewApp(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
