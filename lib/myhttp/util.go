package myhttp

import (
	"net/url"
	"strings"
)

// LocalRedirectTarget only accepts same-site paths, so form posts cannot be abused as an
// open redirect.
func LocalRedirectTarget(target string, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return u.String()
}

// WithQueryParam returns path with key=value added or replaced.
func WithQueryParam(path string, key string, value string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
