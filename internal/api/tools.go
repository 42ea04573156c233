package api

import (
	"context"
	"net/http"
)

// Writing tools are stateless analysis calls.

func (c *Client) SpellCheck(ctx context.Context, text string) (*SpellCheckResult, error) {
	var out SpellCheckResult
	if err := c.do(ctx, http.MethodPost, "/writing-tools/spell-check", nil, textPayload{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SEOSuggestions(ctx context.Context, title, text string) (*SEOResult, error) {
	var out SEOResult
	if err := c.do(ctx, http.MethodPost, "/writing-tools/seo-suggestions", nil, seoPayload{Title: title, Content: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AIVerify(ctx context.Context, text string) (*AIVerifyResult, error) {
	var out AIVerifyResult
	if err := c.do(ctx, http.MethodPost, "/writing-tools/ai-verify", nil, textPayload{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
