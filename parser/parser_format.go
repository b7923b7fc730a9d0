package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/oaserrors"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func (p *Parser) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// fetchURL fetches content from a URL. Every failure is a *oaserrors.FetchError
// so callers can tell an unreachable document from an unparseable one.
func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &oaserrors.FetchError{URL: urlStr, Message: "invalid request", Cause: err}
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oasdocs.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := p.httpClient().Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, &oaserrors.FetchError{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &oaserrors.FetchError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &oaserrors.FetchError{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.FetchError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    "response exceeds maximum size of " + FormatBytes(limit),
		}
	}
	return data, nil
}
