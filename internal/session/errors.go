package session

import (
	"context"
	"errors"
	"strings"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

var (
	// ErrNotSaved is returned by actions that need a server-assigned id.
	ErrNotSaved = errors.New("document has not been saved yet")
	// ErrStale is returned when a newer request on the same slot has been
	// issued; the older response is dropped without touching state.
	ErrStale = errors.New("superseded by a newer request")
)

// Status messages shown to the user.
const (
	MsgSaveFirst    = "Save the document first."
	MsgNoDraft      = "No draft memory found."
	MsgCorruptDraft = "Could not restore draft memory."
	MsgNoIssues     = "No major issues found"
	MsgDraftCleared = "Draft memory cleared."
	msgUnreachable  = "Backend unreachable. Check api_base and try again."
)

// describe turns any backend failure into a user-facing line.
func describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out."
	case api.IsUnreachable(err):
		return msgUnreachable
	}
	return err.Error()
}

// sentence ensures a message ends with terminal punctuation.
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" || strings.HasSuffix(msg, ".") || strings.HasSuffix(msg, "!") || strings.HasSuffix(msg, "?") {
		return msg
	}
	return msg + "."
}
