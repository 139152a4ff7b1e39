// Package assets preloads lesson media ahead of need. Preload failures are
// never fatal: a lesson proceeds without its preview, so callers log and
// move on.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Preloader warms an asset so the presentation layer can show it without a
// fetch stall.
type Preloader interface {
	Preload(ctx context.Context, url string) error
}

// defaultTimeout bounds a single preload fetch.
const defaultTimeout = 10 * time.Second

// HTTPPreloader fetches assets over HTTP and discards the body, relying on
// any intermediate cache to retain it.
type HTTPPreloader struct {
	Client *http.Client
	Logger *zap.Logger
}

// NewHTTPPreloader returns a preloader with a bounded-timeout client.
func NewHTTPPreloader(logger *zap.Logger) *HTTPPreloader {
	return &HTTPPreloader{
		Client: &http.Client{Timeout: defaultTimeout},
		Logger: logger,
	}
}

func (p *HTTPPreloader) Preload(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build preload request: %w", err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("preload %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("preload %s: status %d", url, resp.StatusCode)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain %s: %w", url, err)
	}
	if p.Logger != nil {
		p.Logger.Debug("asset preloaded", zap.String("url", url))
	}
	return nil
}

// NopPreloader does nothing, for tests and offline use.
type NopPreloader struct{}

func (NopPreloader) Preload(context.Context, string) error { return nil }

// FailingPreloader always errors, for exercising the non-fatal path.
type FailingPreloader struct{ Err error }

func (p FailingPreloader) Preload(context.Context, string) error { return p.Err }
