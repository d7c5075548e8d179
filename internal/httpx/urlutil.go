package httpx

import (
	"context"
	"fmt"
	"net/url"
)

// ValidateURL reports whether raw parses to a URL carrying both a
// scheme and a host.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// JoinURL resolves a path against a base URL.
func JoinURL(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL %q: %w", base, err)
	}
	p, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return b.ResolveReference(p).String(), nil
}

// BaseURL reduces a URL to its scheme and authority.
func BaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Probe checks whether the target answers at all. It tries a HEAD
// request and falls back to GET when HEAD is rejected; the target
// counts as reachable when it responds with any status below 500.
// Probe never returns an error.
func (c *Client) Probe(ctx context.Context, target string) bool {
	if resp, err := c.Head(ctx, target, nil); err == nil {
		return resp.StatusCode < 500
	}
	resp, err := c.Get(ctx, target, nil)
	if err != nil {
		return false
	}
	return resp.StatusCode < 500
}
