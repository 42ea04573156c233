package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Each publish call targets a different external channel. The backend
// decides the resulting status; the client only relays it.

func (c *Client) PublishMedium(ctx context.Context, r MediumRequest) (*PublishResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return c.publish(ctx, "/publishing/medium", r)
}

func (c *Client) PublishKDP(ctx context.Context, r KDPRequest) (*PublishResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return c.publish(ctx, "/publishing/kdp", r)
}

func (c *Client) PublishWriteIt(ctx context.Context, documentID int64) (*PublishResult, error) {
	if documentID <= 0 {
		return nil, errors.New("document id is required")
	}
	return c.publish(ctx, "/publishing/write-it", writeItRequest{DocumentID: documentID})
}

func (c *Client) publish(ctx context.Context, path string, body any) (*PublishResult, error) {
	var out PublishResult
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBlogPosts returns documents published to the Write It blog, newest first.
func (c *Client) ListBlogPosts(ctx context.Context) ([]Document, error) {
	var out []Document
	if err := c.do(ctx, http.MethodGet, "/blog/posts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBlogPost(ctx context.Context, slug string) (*Document, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	var out Document
	if err := c.do(ctx, http.MethodGet, "/blog/posts/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
