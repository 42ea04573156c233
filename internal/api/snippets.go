package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// ListSnippets returns a user's snippets, newest first.
func (c *Client) ListSnippets(ctx context.Context, userID int64) ([]Snippet, error) {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	var out []Snippet
	if err := c.do(ctx, http.MethodGet, "/snippets", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSnippet(ctx context.Context, in SnippetInput) (*Snippet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Snippet
	if err := c.do(ctx, http.MethodPost, "/snippets", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DropInSnippet tells the backend a snippet is being placed into a
// document and returns its confirmation message. The buffer itself is
// not changed server side.
func (c *Client) DropInSnippet(ctx context.Context, snippetID, documentID int64) (string, error) {
	if snippetID <= 0 || documentID <= 0 {
		return "", errors.New("snippet id and document id are required")
	}
	path := "/snippets/" + strconv.FormatInt(snippetID, 10) + "/drop-in/" + strconv.FormatInt(documentID, 10)
	var msg string
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &msg); err != nil {
		return "", err
	}
	return msg, nil
}
