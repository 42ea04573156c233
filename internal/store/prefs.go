package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

const prefsFileName = "prefs.json"

// Theme is the light/dark display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme: %q (use light or dark)", s)
}

type prefs struct {
	Theme Theme `json:"theme"`
}

// PrefsStore keeps UI preferences. Reads never fail; a missing or
// unreadable file yields defaults.
type PrefsStore struct {
	path string
}

func NewPrefsStore(dir string) *PrefsStore {
	return &PrefsStore{path: filepath.Join(dir, prefsFileName)}
}

func (s *PrefsStore) load() prefs {
	var p prefs
	b, err := os.ReadFile(s.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(b, &p)
	return p
}

// Saved reports the stored theme, if a valid one exists.
func (s *PrefsStore) Saved() (Theme, bool) {
	t, err := ParseTheme(string(s.load().Theme))
	return t, err == nil
}

// Theme returns the saved theme or fallback when none is valid.
func (s *PrefsStore) Theme(fallback Theme) Theme {
	if t, ok := s.Saved(); ok {
		return t
	}
	if fallback == "" {
		return ThemeLight
	}
	return fallback
}

func (s *PrefsStore) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	p := s.load()
	p.Theme = t
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.path, data)
}
