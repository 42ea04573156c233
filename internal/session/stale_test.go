package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

// gatedBackend holds the first CreateDocument call until released so a
// second save can overtake it.
type gatedBackend struct {
	Backend

	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *gatedBackend) CreateDocument(ctx context.Context, in api.DocumentInput) (*api.Document, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	if n == 1 {
		close(g.started)
		<-g.release
	}
	return &api.Document{ID: int64(n * 10), Title: in.Title, Type: in.Type}, nil
}

func TestStaleSaveResponseIsDropped(t *testing.T) {
	g := &gatedBackend{started: make(chan struct{}), release: make(chan struct{})}
	s := New(Deps{API: g, UserID: 1}, api.TypeArticle)
	ctx := testCtx(t)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Save(ctx)
		errc <- err
	}()
	<-g.started

	doc, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), doc.ID)

	close(g.release)
	assert.ErrorIs(t, <-errc, ErrStale)
	assert.Equal(t, int64(20), s.LastSavedID())
	assert.Equal(t, StateSaved, s.State())
}

func TestEditDuringSaveLandsInEditing(t *testing.T) {
	g := &gatedBackend{started: make(chan struct{}), release: make(chan struct{})}
	s := New(Deps{API: g, UserID: 1}, api.TypeArticle)
	s.SetContent("<p>before</p>")
	ctx := testCtx(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Save(ctx)
	}()
	<-g.started
	s.SetContent("<p>after</p>")
	assert.Equal(t, StateSaving, s.State())

	close(g.release)
	<-done
	assert.Equal(t, StateEditing, s.State())
	assert.Equal(t, "Saved document #10. Newer edits are not saved yet.", s.Status())
	assert.Equal(t, "<p>after</p>", s.View().Content)
	assert.Equal(t, int64(10), s.LastSavedID())

	_, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateSaved, s.State())
}

// publishGate holds PublishWriteIt until released while the read-only
// tools answer at once.
type publishGate struct {
	Backend

	mu        sync.Mutex
	published int
	started   chan struct{}
	release   chan struct{}
}

func (g *publishGate) CreateDocument(_ context.Context, in api.DocumentInput) (*api.Document, error) {
	return &api.Document{ID: 7, Title: in.Title, Type: in.Type}, nil
}

func (g *publishGate) PublishWriteIt(_ context.Context, id int64) (*api.PublishResult, error) {
	close(g.started)
	<-g.release
	g.mu.Lock()
	g.published++
	g.mu.Unlock()
	return &api.PublishResult{Channel: "WRITE_IT", Status: "PUBLISHED", ExternalURL: "/blog/post-7"}, nil
}

func (g *publishGate) SpellCheck(context.Context, string) (*api.SpellCheckResult, error) {
	return &api.SpellCheckResult{}, nil
}

func TestPublishOverlappedBySpellCheckIsReported(t *testing.T) {
	g := &publishGate{started: make(chan struct{}), release: make(chan struct{})}
	s := New(Deps{API: g, UserID: 1}, api.TypeArticle)
	ctx := testCtx(t)
	_, err := s.Save(ctx)
	require.NoError(t, err)

	type result struct {
		res *api.PublishResult
		err error
	}
	done := make(chan result, 1)
	go func() {
		r, err := s.PublishWriteIt(ctx)
		done <- result{r, err}
	}()
	<-g.started

	out, err := s.SpellCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{MsgNoIssues}, out)

	close(g.release)
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "WRITE_IT", r.res.Channel)
	assert.Equal(t, 1, g.published)
	assert.Equal(t, "Published to WRITE_IT: PUBLISHED.", s.Status())
	assert.Equal(t, []string{MsgNoIssues}, s.ToolOutput())
	assert.Equal(t, ToolShown, s.View().Tool)
}

func TestPublishFillsOutputPanel(t *testing.T) {
	g := &publishGate{started: make(chan struct{}), release: make(chan struct{})}
	close(g.release)
	s := New(Deps{API: g, UserID: 1}, api.TypeArticle)
	ctx := testCtx(t)
	_, err := s.Save(ctx)
	require.NoError(t, err)

	_, err = s.PublishWriteIt(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Channel: WRITE_IT", s.ToolOutput()[0])
}

func TestSequencer(t *testing.T) {
	var q sequencer
	a := q.begin(slotTool)
	b := q.begin(slotTool)
	c := q.begin(slotSave)
	assert.False(t, q.current(slotTool, a))
	assert.True(t, q.current(slotTool, b))
	assert.True(t, q.current(slotSave, c))
}
