package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

const memoryFileName = "editor_memory.json"

var (
	// ErrNoDraft means no draft memory has been saved.
	ErrNoDraft = errors.New("no draft memory")
	// ErrCorruptDraft means the saved draft could not be decoded.
	ErrCorruptDraft = errors.New("corrupt draft memory")
)

// EditorMemory is the single local save point of the editor. It is never
// synced to the server.
type EditorMemory struct {
	Title       string    `json:"title"`
	DocType     string    `json:"docType"`
	ContentHTML string    `json:"contentHtml"`
	Tags        string    `json:"tags"`
	Category    string    `json:"category"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MemoryStore persists one EditorMemory per state directory.
type MemoryStore struct {
	path string
	now  func() time.Time
}

// NewMemoryStore stores the draft under dir.
func NewMemoryStore(dir string) *MemoryStore {
	return &MemoryStore{path: filepath.Join(dir, memoryFileName), now: time.Now}
}

// Path returns the on-disk location of the draft.
func (s *MemoryStore) Path() string { return s.path }

// Save overwrites the slot and stamps UpdatedAt.
func (s *MemoryStore) Save(m EditorMemory) (*EditorMemory, error) {
	m.UpdatedAt = s.now().UTC()
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return nil, err
	}
	if err := utils.SafeWriteFile(s.path, data); err != nil {
		return nil, fmt.Errorf("save draft memory: %w", err)
	}
	return &m, nil
}

// Load returns ErrNoDraft when nothing is saved and an error matching
// ErrCorruptDraft when the slot cannot be decoded.
func (s *MemoryStore) Load() (*EditorMemory, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("read draft memory: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return nil, ErrNoDraft
	}
	var m *EditorMemory
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDraft, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: empty document", ErrCorruptDraft)
	}
	return m, nil
}

// Clear removes the slot. Clearing an empty slot is not an error.
func (s *MemoryStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear draft memory: %w", err)
	}
	return nil
}
