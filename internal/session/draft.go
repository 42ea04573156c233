package session

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

const stampLayout = "2006-01-02 15:04:05"

// SaveDraftMemory overwrites the local draft slot with the current fields.
// It does not touch the save state.
func (s *Session) SaveDraftMemory() error {
	s.mu.Lock()
	m := store.EditorMemory{
		Title:       s.title,
		DocType:     string(s.docType),
		ContentHTML: s.content,
		Tags:        s.tags,
		Category:    s.category,
	}
	s.mu.Unlock()

	saved, err := s.drafts.Save(m)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = "Could not save draft memory: " + err.Error()
		s.log.Warn("save draft memory", zap.Error(err))
		return err
	}
	s.status = fmt.Sprintf("Draft memory saved at %s.", saved.UpdatedAt.Local().Format(stampLayout))
	return nil
}

// RestoreDraftMemory loads the local draft over the current fields and
// reports whether anything was restored. Missing or unreadable memory
// leaves the fields unchanged.
func (s *Session) RestoreDraftMemory() bool {
	m, err := s.drafts.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.state = StateEditing
	}
	switch {
	case errors.Is(err, store.ErrNoDraft):
		s.status = MsgNoDraft
		return false
	case err != nil:
		s.status = MsgCorruptDraft
		s.log.Info("ignoring unreadable draft memory", zap.Error(err))
		return false
	}

	s.title = m.Title
	if t, err := api.ParseDocumentType(m.DocType); err == nil {
		s.docType = t
	}
	s.tags = m.Tags
	s.category = m.Category
	s.content = m.ContentHTML
	at := m.UpdatedAt
	s.restoredAt = &at
	s.touchLocked()
	s.status = fmt.Sprintf("Draft memory restored (saved %s).", at.Local().Format(stampLayout))
	return true
}

func (s *Session) ClearDraftMemory() error {
	err := s.drafts.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = "Could not clear draft memory: " + err.Error()
		return err
	}
	s.restoredAt = nil
	s.status = MsgDraftCleared
	return nil
}

// RestoredAt is the timestamp of the draft memory loaded into the session.
func (s *Session) RestoredAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restoredAt == nil {
		return time.Time{}, false
	}
	return *s.restoredAt, true
}
