package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/content"
)

// toolInput is what a tool call reads from the buffer at start.
type toolInput struct {
	Title string
	Text  string
}

// runTool moves the output panel through Running to Shown. Each call
// replaces the previous output wholesale; a response overtaken by a
// newer tool call is dropped.
func (s *Session) runTool(ctx context.Context, name string, call func(context.Context, toolInput) ([]string, error)) error {
	return s.run(ctx, name, false, call)
}

// runAction is runTool for calls that change server state. Their outcome
// is never dropped: the status line always reports it, and only a newer
// tool call keeps it out of the output panel.
func (s *Session) runAction(ctx context.Context, name string, call func(context.Context, toolInput) ([]string, error)) error {
	return s.run(ctx, name, true, call)
}

func (s *Session) run(ctx context.Context, name string, mutating bool, call func(context.Context, toolInput) ([]string, error)) error {
	s.mu.Lock()
	in := toolInput{Title: s.title, Text: content.PlainText(s.content)}
	s.tool = ToolRunning
	ticket := s.seq.begin(slotTool)
	s.mu.Unlock()

	lines, err := call(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	panel := s.seq.current(slotTool, ticket)
	if !panel && !mutating {
		s.log.Debug("dropping stale tool response", zap.String("tool", name), zap.Uint64("ticket", ticket))
		return ErrStale
	}
	if err != nil {
		msg := fmt.Sprintf("%s failed: %s", name, sentence(describe(err)))
		lines = []string{msg}
		s.status = msg
		s.log.Info("tool failed", zap.String("tool", name), zap.Error(err))
	}
	if panel {
		s.tool = ToolShown
		s.toolOutput = lines
	}
	return err
}

// SpellCheck sends the plain-text projection of the buffer.
func (s *Session) SpellCheck(ctx context.Context) ([]string, error) {
	err := s.runTool(ctx, "Spell check", func(ctx context.Context, in toolInput) ([]string, error) {
		res, err := s.api.SpellCheck(ctx, in.Text)
		if err != nil {
			return nil, err
		}
		if len(res.Suggestions) == 0 {
			return []string{MsgNoIssues}, nil
		}
		return res.Suggestions, nil
	})
	if err != nil {
		return nil, err
	}
	return s.ToolOutput(), nil
}

// SEO prefixes the server's word count to its suggestions.
func (s *Session) SEO(ctx context.Context) ([]string, error) {
	err := s.runTool(ctx, "SEO", func(ctx context.Context, in toolInput) ([]string, error) {
		res, err := s.api.SEOSuggestions(ctx, in.Title, in.Text)
		if err != nil {
			return nil, err
		}
		return append([]string{fmt.Sprintf("Word count: %d", res.WordCount)}, res.Suggestions...), nil
	})
	if err != nil {
		return nil, err
	}
	return s.ToolOutput(), nil
}

// AIVerify prefixes the provider name to its suggestions.
func (s *Session) AIVerify(ctx context.Context) ([]string, error) {
	err := s.runTool(ctx, "AI verify", func(ctx context.Context, in toolInput) ([]string, error) {
		res, err := s.api.AIVerify(ctx, in.Text)
		if err != nil {
			return nil, err
		}
		return append([]string{"Provider: " + res.Provider}, res.Suggestions...), nil
	})
	if err != nil {
		return nil, err
	}
	return s.ToolOutput(), nil
}
