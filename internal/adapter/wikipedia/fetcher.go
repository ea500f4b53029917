package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBodyBytes = 10 * 1024 * 1024
)

// StatusError is returned when the article page answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// HTTPFetcher implements domain.ArticleFetcher over plain HTTP.
// It is safe for concurrent use.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
}

// NewHTTPFetcher creates a fetcher from configuration. A nil client uses a fresh http.Client.
func NewHTTPFetcher(cfg config.FetcherConfig, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client:       client,
		userAgent:    cfg.UserAgent,
		timeout:      timeout,
		maxBodyBytes: maxBody,
	}
}

// Fetch validates url, then GETs it with the configured browser identity and timeout.
// Invalid URLs fail before any network access; transport failures and non-2xx statuses
// surface as FETCH_FAILED and are not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", err
	}

	l := logger.Get()
	l.Info("Fetching article", zap.String("url", url))

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("Invalid Wikipedia URL: %v", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("request exceeded %v: %w", f.timeout, err)
		}
		l.Warn("Article fetch failed", zap.String("url", url), zap.Error(err))
		return "", domain.NewFetchFailedError(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: url}
		l.Warn("Article fetch returned non-success status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", domain.NewFetchFailedError(url, statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", domain.NewFetchFailedError(url, fmt.Errorf("read body: %w", err))
	}

	l.Info("Fetched article",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)
	return string(body), nil
}

var _ domain.ArticleFetcher = (*HTTPFetcher)(nil)
