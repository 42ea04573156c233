package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func chapterPath(id int64, rest ...string) string {
	p := "/chapters/" + strconv.FormatInt(id, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// ListChapters returns a document's chapters by ascending position.
func (c *Client) ListChapters(ctx context.Context, documentID int64) ([]Chapter, error) {
	var out []Chapter
	if err := c.do(ctx, http.MethodGet, documentPath(documentID, "chapters"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateChapter(ctx context.Context, documentID int64, in ChapterInput) (*Chapter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Chapter
	if err := c.do(ctx, http.MethodPost, documentPath(documentID, "chapters"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderChapters applies new positions and returns every chapter of the
// document sorted by its updated position. The server answers 404 when
// the document has no chapters.
func (c *Client) ReorderChapters(ctx context.Context, documentID int64, moves []ChapterPosition) ([]Chapter, error) {
	if len(moves) == 0 {
		return nil, errors.New("at least one chapter position is required")
	}
	if err := validation.Validate(moves); err != nil {
		return nil, err
	}
	var out []Chapter
	if err := c.do(ctx, http.MethodPatch, documentPath(documentID, "chapters", "reorder"), nil, moves, &out); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ListSections returns a chapter's sections by ascending position.
func (c *Client) ListSections(ctx context.Context, chapterID int64) ([]Section, error) {
	var out []Section
	if err := c.do(ctx, http.MethodGet, chapterPath(chapterID, "sections"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSection(ctx context.Context, chapterID int64, in SectionInput) (*Section, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Section
	if err := c.do(ctx, http.MethodPost, chapterPath(chapterID, "sections"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
