package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func documentPath(id int64, rest ...string) string {
	p := "/documents/" + strconv.FormatInt(id, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// ListDocuments returns a user's documents. A non-empty Query filters by
// title and takes precedence over Tag on the server.
func (c *Client) ListDocuments(ctx context.Context, userID int64, f DocumentFilter) ([]Document, error) {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	if s := strings.TrimSpace(f.Query); s != "" {
		q.Set("query", s)
	}
	if s := strings.TrimSpace(f.Tag); s != "" {
		q.Set("tag", s)
	}
	var out []Document
	if err := c.do(ctx, http.MethodGet, "/documents", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodGet, documentPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDocument validates the input locally and posts it. The server
// assigns the id and derived metrics.
func (c *Client) CreateDocument(ctx context.Context, in DocumentInput) (*Document, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Document
	if err := c.do(ctx, http.MethodPost, "/documents", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDocument replaces the server state of an existing document.
func (c *Client) UpdateDocument(ctx context.Context, id int64, in DocumentInput) (*Document, error) {
	if id <= 0 {
		return nil, errors.New("document id is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Document
	if err := c.do(ctx, http.MethodPut, documentPath(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, documentPath(id), nil, nil, nil)
}

// CreateSnapshot stores the document's current content as a new version.
func (c *Client) CreateSnapshot(ctx context.Context, documentID int64) (*Snapshot, error) {
	var out Snapshot
	if err := c.do(ctx, http.MethodPost, documentPath(documentID, "snapshots"), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.DocumentID == 0 {
		out.DocumentID = documentID
	}
	return &out, nil
}

// ListVersions returns stored versions, newest first.
func (c *Client) ListVersions(ctx context.Context, documentID int64) ([]DocumentVersion, error) {
	var out []DocumentVersion
	if err := c.do(ctx, http.MethodGet, documentPath(documentID, "versions"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportDocument renders the document on the server in the given format.
func (c *Client) ExportDocument(ctx context.Context, id int64, format ExportFormat) (*ExportResult, error) {
	f, err := ParseExportFormat(string(format))
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("format", string(f))
	var out ExportResult
	if err := c.do(ctx, http.MethodGet, documentPath(id, "export"), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
