package store

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemoryStore(t.TempDir())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	in := EditorMemory{Title: "Draft", DocType: "BOOK", ContentHTML: "<p>x <b>y</b></p>", Tags: "a,b", Category: "fiction"}
	saved, err := s.Save(in)
	require.NoError(t, err)
	assert.Equal(t, fixed, saved.UpdatedAt)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.DocType, got.DocType)
	assert.Equal(t, in.ContentHTML, got.ContentHTML)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, in.Category, got.Category)
	assert.True(t, fixed.Equal(got.UpdatedAt))
}

func TestMemorySaveOverwrites(t *testing.T) {
	s := NewMemoryStore(t.TempDir())
	_, err := s.Save(EditorMemory{Title: "one"})
	require.NoError(t, err)
	_, err = s.Save(EditorMemory{Title: "two"})
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "two", got.Title)
}

func TestMemoryMissing(t *testing.T) {
	s := NewMemoryStore(t.TempDir())
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.NoError(t, s.Clear())
}

func TestMemoryCorrupt(t *testing.T) {
	s := NewMemoryStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))
	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptDraft))

	require.NoError(t, os.WriteFile(s.Path(), []byte("null"), 0o644))
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrCorruptDraft)
}

func TestMemoryClear(t *testing.T) {
	s := NewMemoryStore(t.TempDir())
	_, err := s.Save(EditorMemory{Title: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestPrefsTheme(t *testing.T) {
	dir := t.TempDir()
	p := NewPrefsStore(dir)
	assert.Equal(t, ThemeLight, p.Theme(""))
	assert.Equal(t, ThemeDark, p.Theme(ThemeDark))
	_, ok := p.Saved()
	assert.False(t, ok)

	require.NoError(t, p.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, NewPrefsStore(dir).Theme(ThemeLight))
	saved, ok := p.Saved()
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, saved)

	assert.Error(t, p.SetTheme("sepia"))

	require.NoError(t, os.WriteFile(p.path, []byte("garbage"), 0o644))
	assert.Equal(t, ThemeLight, p.Theme(ThemeLight))
}
