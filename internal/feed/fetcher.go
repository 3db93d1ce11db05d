package feed

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
)

// FetcherOptions bounds one fetcher's transport behavior. Feeds and scraped
// pages get separate fetchers because they carry separate timeouts.
type FetcherOptions struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
}

// Fetcher performs timeout-bounded retrieval with bounded retries and a
// fixed inter-attempt delay. Transient failures (timeout, connection error,
// 5xx) are retried; 4xx responses are terminal after a single attempt.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries - 1).
		SetRetryWaitTime(opts.RetryDelay).
		SetRetryMaxWaitTime(opts.RetryDelay).
		SetHeader("User-Agent", opts.UserAgent)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() >= http.StatusInternalServerError
	})

	client.AddRetryHook(func(r *resty.Response, err error) {
		event := logger.Warn().
			Str("url", r.Request.URL).
			Int("attempt", r.Request.Attempt)
		if err != nil {
			event = event.Err(err)
		} else {
			event = event.Int("status", r.StatusCode())
		}
		event.Msg("Retrying fetch")
	})

	return &Fetcher{client: client}
}

// Fetch retrieves the raw payload at url. On failure the returned error is
// always a *models.FetchError so the caller can decide how to degrade.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, classifyTransportError(url, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &models.FetchError{
			Kind:   models.FetchHTTPError,
			URL:    url,
			Status: resp.StatusCode(),
		}
	}

	return resp.Body(), nil
}

func classifyTransportError(url string, err error) *models.FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &models.FetchError{Kind: models.FetchTimeout, URL: url, Err: err}
	}
	return &models.FetchError{Kind: models.FetchConnectionFailed, URL: url, Err: err}
}
