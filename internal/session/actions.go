package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

// requireSaved short-circuits server-side actions until a save has
// produced an id. No network call is made when it fails.
func (s *Session) requireSaved() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSavedID == 0 {
		s.status = MsgSaveFirst
		return 0, ErrNotSaved
	}
	return s.lastSavedID, nil
}

// Snapshot asks the server to store the saved document as a new version.
func (s *Session) Snapshot(ctx context.Context) (*api.Snapshot, error) {
	id, err := s.requireSaved()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	ticket := s.seq.begin(slotSnapshot)
	s.mu.Unlock()

	snap, err := s.api.CreateSnapshot(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.current(slotSnapshot, ticket) {
		return nil, ErrStale
	}
	if err != nil {
		s.status = "Snapshot failed: " + sentence(describe(err))
		return nil, err
	}
	s.status = fmt.Sprintf("Snapshot saved as version %d.", snap.VersionNumber)
	return snap, nil
}

// Export renders the saved document on the server.
func (s *Session) Export(ctx context.Context, format api.ExportFormat) (*api.ExportResult, error) {
	id, err := s.requireSaved()
	if err != nil {
		return nil, err
	}
	var res *api.ExportResult
	err = s.runAction(ctx, "Export", func(ctx context.Context, _ toolInput) ([]string, error) {
		r, err := s.api.ExportDocument(ctx, id, format)
		if err != nil {
			return nil, err
		}
		res = r
		return []string{
			"File: " + r.FileName,
			"Type: " + r.MimeType,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.setStatus(fmt.Sprintf("Exported %s.", res.FileName))
	return res, nil
}

// KDPOptions are the listing details sent with a KDP publish.
type KDPOptions struct {
	Description string
	Keywords    []string
	Categories  []string
	CoverURL    string
}

func (s *Session) PublishMedium(ctx context.Context, tags []string, canonicalURL string) (*api.PublishResult, error) {
	return s.publish(ctx, func(ctx context.Context, id int64) (*api.PublishResult, error) {
		return s.api.PublishMedium(ctx, api.MediumRequest{DocumentID: id, Tags: tags, CanonicalURL: canonicalURL})
	})
}

func (s *Session) PublishKDP(ctx context.Context, opts KDPOptions) (*api.PublishResult, error) {
	return s.publish(ctx, func(ctx context.Context, id int64) (*api.PublishResult, error) {
		return s.api.PublishKDP(ctx, api.KDPRequest{
			DocumentID:  id,
			Description: opts.Description,
			Keywords:    opts.Keywords,
			Categories:  opts.Categories,
			CoverURL:    opts.CoverURL,
		})
	})
}

func (s *Session) PublishWriteIt(ctx context.Context) (*api.PublishResult, error) {
	return s.publish(ctx, func(ctx context.Context, id int64) (*api.PublishResult, error) {
		return s.api.PublishWriteIt(ctx, id)
	})
}

func (s *Session) publish(ctx context.Context, call func(context.Context, int64) (*api.PublishResult, error)) (*api.PublishResult, error) {
	id, err := s.requireSaved()
	if err != nil {
		return nil, err
	}
	var res *api.PublishResult
	err = s.runAction(ctx, "Publish", func(ctx context.Context, _ toolInput) ([]string, error) {
		r, err := call(ctx, id)
		if err != nil {
			return nil, err
		}
		res = r
		return PublishLines(r), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("published", zap.Int64("id", id), zap.String("channel", res.Channel), zap.String("status", res.Status))
	s.setStatus(fmt.Sprintf("Published to %s: %s.", res.Channel, res.Status))
	return res, nil
}

// PublishLines formats a publish result for the output panel.
func PublishLines(r *api.PublishResult) []string {
	lines := []string{"Channel: " + r.Channel, "Status: " + r.Status}
	if r.ExternalURL != "" {
		lines = append(lines, "URL: "+r.ExternalURL)
	}
	if r.GeneratedAt != "" {
		lines = append(lines, "Generated: "+r.GeneratedAt)
	}
	return lines
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}
