package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

// Lister is the part of the API client the list view uses.
type Lister interface {
	ListDocuments(ctx context.Context, userID int64, f api.DocumentFilter) ([]api.Document, error)
	ListSnippets(ctx context.Context, userID int64) ([]api.Snippet, error)
	CreateSnippet(ctx context.Context, in api.SnippetInput) (*api.Snippet, error)
	CreateSnapshot(ctx context.Context, documentID int64) (*api.Snapshot, error)
}

// ListView holds the latest fetched copies of a user's documents and
// snippets. It is a snapshot of the backend, replaced wholesale on every
// refresh, never merged.
type ListView struct {
	api    Lister
	userID int64
	log    *zap.Logger

	mu       sync.Mutex
	docs     []api.Document
	snippets []api.Snippet
	filter   api.DocumentFilter
	status   string
	loaded   bool
	seq      sequencer
}

func NewListView(l Lister, userID int64, log *zap.Logger) *ListView {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListView{api: l, userID: userID, log: log}
}

// Refresh re-fetches both collections with the given filter. A failed
// fetch leaves that list empty and explains why in Status.
func (v *ListView) Refresh(ctx context.Context, query, tag string) error {
	f := api.DocumentFilter{Query: strings.TrimSpace(query), Tag: strings.TrimSpace(tag)}
	v.mu.Lock()
	ticket := v.seq.begin(slotRefresh)
	v.mu.Unlock()

	docs, docErr := v.api.ListDocuments(ctx, v.userID, f)
	snippets, snipErr := v.api.ListSnippets(ctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.seq.current(slotRefresh, ticket) {
		v.log.Debug("dropping stale refresh", zap.Uint64("ticket", ticket))
		return ErrStale
	}
	v.filter = f
	v.loaded = true
	v.docs = docs
	v.snippets = snippets

	var problems []string
	if docErr != nil {
		v.docs = nil
		problems = append(problems, "Could not load documents: "+sentence(describe(docErr)))
	}
	if snipErr != nil {
		v.snippets = nil
		problems = append(problems, "Could not load snippets: "+sentence(describe(snipErr)))
	}
	if len(problems) > 0 {
		v.status = strings.Join(problems, " ")
		v.log.Info("refresh incomplete", zap.NamedError("documents", docErr), zap.NamedError("snippets", snipErr))
		return errors.Join(docErr, snipErr)
	}
	v.status = fmt.Sprintf("%d documents, %d snippets.", len(docs), len(snippets))
	return nil
}

// Search refreshes with a new filter.
func (v *ListView) Search(ctx context.Context, query, tag string) error {
	return v.Refresh(ctx, query, tag)
}

func (v *ListView) reload(ctx context.Context) error {
	v.mu.Lock()
	f := v.filter
	v.mu.Unlock()
	return v.Refresh(ctx, f.Query, f.Tag)
}

// CreateSnippet posts a snippet and then re-fetches so the list reflects it.
func (v *ListView) CreateSnippet(ctx context.Context, title, body string) (*api.Snippet, error) {
	sn, err := v.api.CreateSnippet(ctx, api.SnippetInput{Title: strings.TrimSpace(title), Content: body, UserID: v.userID})
	if err != nil {
		v.setStatus("Could not create snippet: " + sentence(describe(err)))
		return nil, err
	}
	if err := v.reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return sn, err
	}
	v.setStatus(fmt.Sprintf("Snippet %q created.", sn.Title))
	return sn, nil
}

// CreateSnapshot snapshots a listed document and then re-fetches.
func (v *ListView) CreateSnapshot(ctx context.Context, documentID int64) (*api.Snapshot, error) {
	snap, err := v.api.CreateSnapshot(ctx, documentID)
	if err != nil {
		v.setStatus("Snapshot failed: " + sentence(describe(err)))
		return nil, err
	}
	if err := v.reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return snap, err
	}
	v.setStatus(fmt.Sprintf("Snapshot saved as version %d for document #%d.", snap.VersionNumber, documentID))
	return snap, nil
}

func (v *ListView) setStatus(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = msg
}

func (v *ListView) Documents() []api.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]api.Document(nil), v.docs...)
}

func (v *ListView) Snippets() []api.Snippet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]api.Snippet(nil), v.snippets...)
}

func (v *ListView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Filter is the filter used by the last applied refresh.
func (v *ListView) Filter() api.DocumentFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Loaded reports whether any refresh has completed.
func (v *ListView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}
