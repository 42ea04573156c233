package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/content"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

// State is the editor's save lifecycle.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
	StateSaved
	StateSaveFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateSaveFailed:
		return "save failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ToolState tracks the tool-output panel independently of saving.
type ToolState int

const (
	ToolIdle ToolState = iota
	ToolRunning
	ToolShown
)

// Backend is the part of the API client an editor session uses.
type Backend interface {
	CreateDocument(ctx context.Context, in api.DocumentInput) (*api.Document, error)
	UpdateDocument(ctx context.Context, id int64, in api.DocumentInput) (*api.Document, error)
	CreateSnapshot(ctx context.Context, documentID int64) (*api.Snapshot, error)
	ExportDocument(ctx context.Context, id int64, format api.ExportFormat) (*api.ExportResult, error)
	PublishMedium(ctx context.Context, r api.MediumRequest) (*api.PublishResult, error)
	PublishKDP(ctx context.Context, r api.KDPRequest) (*api.PublishResult, error)
	PublishWriteIt(ctx context.Context, documentID int64) (*api.PublishResult, error)
	SpellCheck(ctx context.Context, text string) (*api.SpellCheckResult, error)
	SEOSuggestions(ctx context.Context, title, text string) (*api.SEOResult, error)
	AIVerify(ctx context.Context, text string) (*api.AIVerifyResult, error)
}

// DraftStore is the local single-slot draft memory.
type DraftStore interface {
	Save(m store.EditorMemory) (*store.EditorMemory, error)
	Load() (*store.EditorMemory, error)
	Clear() error
}

// Deps are the collaborators threaded into a session. UserID is the
// current-user context from configuration.
type Deps struct {
	API       Backend
	Drafts    DraftStore
	Formatter Formatter
	UserID    int64
	Logger    *zap.Logger
}

// Session owns the transient state of one editor screen. It is safe for
// concurrent use; the lock is never held across a backend call.
type Session struct {
	api       Backend
	drafts    DraftStore
	formatter Formatter
	userID    int64
	log       *zap.Logger

	mu          sync.Mutex
	state       State
	docType     api.DocumentType
	title       string
	tags        string
	category    string
	content     string
	lastSavedID int64
	lastSaved   *api.Document
	dirty       bool
	status      string
	restoredAt  *time.Time
	tool        ToolState
	toolOutput  []string
	seq         sequencer
}

// New creates an idle session seeded from the navigation type parameter.
func New(deps Deps, docType api.DocumentType) *Session {
	if !docType.Valid() {
		docType = api.TypeArticle
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	f := deps.Formatter
	if f == nil {
		f = HTMLFormatter{}
	}
	return &Session{
		api:       deps.API,
		drafts:    deps.Drafts,
		formatter: f,
		userID:    deps.UserID,
		log:       log,
		state:     StateIdle,
		docType:   docType,
		title:     docType.DefaultTitle(),
	}
}

// Start enters Editing, restoring draft memory over the seeded defaults
// when one exists.
func (s *Session) Start() {
	if s.drafts != nil && s.RestoreDraftMemory() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	if s.status == "" {
		s.status = fmt.Sprintf("New %s draft.", strings.ToLower(string(s.docType)))
	}
}

// View is a consistent copy of the session for rendering.
type View struct {
	State          State
	DocType        api.DocumentType
	Title          string
	Tags           string
	Category       string
	Content        string
	LastSavedID    int64
	Status         string
	RestoredAt     *time.Time
	Words          int
	ReadingMinutes int
	Tool           ToolState
	ToolOutput     []string
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := content.Measure(s.content)
	return View{
		State:          s.state,
		DocType:        s.docType,
		Title:          s.title,
		Tags:           s.tags,
		Category:       s.category,
		Content:        s.content,
		LastSavedID:    s.lastSavedID,
		Status:         s.status,
		RestoredAt:     s.restoredAt,
		Words:          stats.Words,
		ReadingMinutes: stats.ReadingMinutes,
		Tool:           s.tool,
		ToolOutput:     append([]string(nil), s.toolOutput...),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastSavedID is the server id from the latest successful save, or 0.
func (s *Session) LastSavedID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedID
}

// LastSaved is the document the server returned on the latest save.
func (s *Session) LastSaved() *api.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

func (s *Session) ToolOutput() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.toolOutput...)
}

// WordCount is recomputed from the buffer on every call.
func (s *Session) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return content.Measure(s.content).Words
}

func (s *Session) ReadingTime() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return content.Measure(s.content).ReadingMinutes
}

// Preview renders the buffer as markdown.
func (s *Session) Preview() (string, error) {
	s.mu.Lock()
	html := s.content
	s.mu.Unlock()
	return content.ToMarkdown(html)
}

// touchLocked moves a finished save back to Editing after an edit. An
// in-flight save keeps its state and carries its own buffer copy; the
// edit is remembered so the save lands in Editing rather than Saved.
func (s *Session) touchLocked() {
	if s.state == StateSaving {
		s.dirty = true
		return
	}
	s.state = StateEditing
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.touchLocked()
}

func (s *Session) SetTags(tags string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = tags
	s.touchLocked()
}

func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.touchLocked()
}

func (s *Session) SetContent(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = html
	s.touchLocked()
}

// ApplyFormat relays a formatting command to the platform formatter and
// stores the resulting buffer.
func (s *Session) ApplyFormat(sel Selection, cmd FormatCommand, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.formatter.ApplyFormat(s.content, sel, cmd, value)
	if err != nil {
		s.status = "Formatting failed: " + err.Error()
		return err
	}
	s.content = out
	s.touchLocked()
	return nil
}

func (s *Session) inputLocked() api.DocumentInput {
	return api.DocumentInput{
		Title:    strings.TrimSpace(s.title),
		Type:     s.docType,
		Content:  content.Sanitize(s.content),
		UserID:   s.userID,
		Tags:     strings.TrimSpace(s.tags),
		Category: strings.TrimSpace(s.category),
	}
}

// Save creates a new server document from a copy of the buffer. Failures
// leave the session in SaveFailed; the user retries by saving again.
func (s *Session) Save(ctx context.Context) (*api.Document, error) {
	return s.save(ctx, func(ctx context.Context, in api.DocumentInput) (*api.Document, error) {
		return s.api.CreateDocument(ctx, in)
	})
}

// Update replaces the last saved document with the current buffer.
func (s *Session) Update(ctx context.Context) (*api.Document, error) {
	id, err := s.requireSaved()
	if err != nil {
		return nil, err
	}
	return s.save(ctx, func(ctx context.Context, in api.DocumentInput) (*api.Document, error) {
		return s.api.UpdateDocument(ctx, id, in)
	})
}

func (s *Session) save(ctx context.Context, call func(context.Context, api.DocumentInput) (*api.Document, error)) (*api.Document, error) {
	s.mu.Lock()
	in := s.inputLocked()
	s.state = StateSaving
	s.dirty = false
	s.status = "Saving..."
	ticket := s.seq.begin(slotSave)
	s.mu.Unlock()

	doc, err := call(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.current(slotSave, ticket) {
		s.log.Debug("dropping stale save response", zap.Uint64("ticket", ticket))
		return nil, ErrStale
	}
	if err != nil {
		s.dirty = false
		s.state = StateSaveFailed
		s.status = "Save failed: " + sentence(describe(err)) + " Save again to retry."
		s.log.Info("save failed", zap.Error(err))
		return nil, err
	}
	s.lastSavedID = doc.ID
	s.lastSaved = doc
	s.state = StateSaved
	s.status = fmt.Sprintf("Saved document #%d.", doc.ID)
	if s.dirty {
		s.state = StateEditing
		s.status = fmt.Sprintf("Saved document #%d. Newer edits are not saved yet.", doc.ID)
		s.dirty = false
	}
	s.log.Info("document saved", zap.Int64("id", doc.ID), zap.String("type", string(doc.Type)))
	return doc, nil
}
