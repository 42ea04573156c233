package api

import (
	"context"
	"net/http"
)

func (c *Client) ListMedia(ctx context.Context, documentID int64) ([]MediaFile, error) {
	var out []MediaFile
	if err := c.do(ctx, http.MethodGet, documentPath(documentID, "media"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMedia records an asset reference; the file itself stays where URL
// points.
func (c *Client) AddMedia(ctx context.Context, documentID int64, in MediaInput) (*MediaFile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out MediaFile
	if err := c.do(ctx, http.MethodPost, documentPath(documentID, "media"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
