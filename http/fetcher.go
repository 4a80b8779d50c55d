// Package http provides HTTP implementations of docserve interfaces: a
// Fetcher that downloads documents from a documentation host and a Handler
// that exposes a DocumentService over HTTP.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docserve"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements docserve.Fetcher at compile time.
var _ docserve.Fetcher = (*Fetcher)(nil)

// Fetcher downloads documents from <baseURL>/<kind filename>.
type Fetcher struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	delays    []time.Duration
	limiter   *rate.Limiter
	converter docserve.Converter
	extractor docserve.Extractor
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the HTTP client. Its timeout takes precedence over WithTimeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRetryDelays retries failed requests once per delay, waiting the delay
// before each retry. By default a fetch is attempted once.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRateLimit limits outgoing requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithConverter converts text/html responses to markdown.
func WithConverter(c docserve.Converter) Option {
	return func(f *Fetcher) {
		f.converter = c
	}
}

// WithExtractor narrows text/html responses to their main content before
// conversion. It has no effect without a converter.
func WithExtractor(e docserve.Extractor) Option {
	return func(f *Fetcher) {
		f.extractor = e
	}
}

// NewFetcher creates a new Fetcher for documents hosted under baseURL.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultFetchTimeout,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// URL returns the remote location of kind.
func (f *Fetcher) URL(kind docserve.Kind) string {
	return f.baseURL + "/" + kind.Filename()
}

// Fetch downloads the document for kind, retrying according to the
// configured delays.
func (f *Fetcher) Fetch(ctx context.Context, kind docserve.Kind) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		content, err := f.fetchOnce(ctx, kind)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, kind docserve.Kind) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := f.URL(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, text/html;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: HTTP %d for %s", kind, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: read body: %v", kind, err)
	}

	if f.converter != nil && isHTML(resp.Header.Get("Content-Type")) {
		html := string(body)
		if f.extractor != nil {
			if html, err = f.extractor.Extract(html); err != nil {
				return "", fmt.Errorf("extract %s: %w", kind, err)
			}
		}
		md, err := f.converter.Convert(html)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", kind, err)
		}
		return md, nil
	}

	return string(body), nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}
