// Package rod fetches documents through a headless Chrome browser, for
// documentation hosts that only render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docserve"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docserve.Fetcher at compile time.
var _ docserve.Fetcher = (*Fetcher)(nil)

// Fetcher renders <BaseURL>/<kind filename> in a browser tab.
// Text responses are returned as displayed; HTML pages are passed through
// Extractor (when set) and Converter.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	BaseURL   string
	Converter docserve.Converter
	Extractor docserve.Extractor

	browser *rod.Browser
}

// NewFetcher launches a headless browser for documents under baseURL.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(baseURL string, converter docserve.Converter) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		Converter: converter,
		browser:   browser,
	}, nil
}

// Fetch renders the document for kind and returns it as markdown.
func (f *Fetcher) Fetch(ctx context.Context, kind docserve.Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	url := f.BaseURL + "/" + kind.Filename()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: open tab: %v", kind, err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}

	// responseStatus is 0 on browsers that do not report it.
	status, err := page.Eval(`() => performance.getEntriesByType("navigation")[0]?.responseStatus ?? 0`)
	if err == nil {
		if code := status.Value.Int(); code != 0 && (code < 200 || code > 299) {
			return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: HTTP %d for %s", kind, code, url)
		}
	}

	contentType, err := page.Eval(`() => document.contentType`)
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}

	if contentType.Value.Str() != "text/html" || f.Converter == nil {
		body, err := page.Element("body")
		if err != nil {
			return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
		}
		return body.Text()
	}

	html, err := page.HTML()
	if err != nil {
		return "", docserve.Errorf(docserve.ENETWORK, "fetch %s: %v", kind, err)
	}
	if f.Extractor != nil {
		if html, err = f.Extractor.Extract(html); err != nil {
			return "", fmt.Errorf("extract %s: %w", kind, err)
		}
	}
	md, err := f.Converter.Convert(html)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", kind, err)
	}
	return md, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
