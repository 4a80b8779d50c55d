package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docserve"
	"github.com/fwojciec/docserve/docs"
	"github.com/fwojciec/docserve/fs"
	"github.com/fwojciec/docserve/goquery"
	"github.com/fwojciec/docserve/htmltomarkdown"
	dochttp "github.com/fwojciec/docserve/http"
	"github.com/fwojciec/docserve/readability"
	"github.com/fwojciec/docserve/rod"
	docslog "github.com/fwojciec/docserve/slog"
	"github.com/fwojciec/docserve/sqlite"
	"github.com/fwojciec/docserve/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when the sqlite cache backend is selected.
	DB *sqlite.DB

	// Headless browser, launched when --browser is set.
	Browser *rod.Fetcher

	// Service is the wired document service, exposed for end-to-end testing.
	Service *docs.Service
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.Browser != nil {
		errs = append(errs, m.Browser.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docserve"),
		kong.Description("Serve documentation with caching, sections and pagination"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docserve --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.LogLevel)
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cache, err := m.openCache(cli, logger)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Cache = cache

	// clear-cache only touches the disk tier.
	if strings.HasPrefix(kongCtx.Command(), "clear-cache") {
		return kongCtx.Run(deps)
	}

	if cli.BaseURL == "" {
		fmt.Fprintln(stderr, "Hint: Set DOCSERVE_BASE_URL or pass --base-url")
		return docserve.Errorf(docserve.EINVALID, "documentation base URL not set")
	}

	fetcher, err := m.newFetcher(cli)
	if err != nil {
		return err
	}

	svc := docs.NewService(docslog.NewLoggingFetcher(fetcher, logger), cache)
	svc.Memory = docslog.NewLoggingCacheStore(svc.Memory, "memory", logger)
	svc.Context = &fs.WorkingDirContext{Tools: cli.Tools}
	svc.Logger = logger
	svc.TTL = cli.TTL
	m.Service = svc

	deps.Documents = svc
	deps.Warmer = svc

	return kongCtx.Run(deps)
}

// openCache opens the disk tier selected by the CLI flags.
func (m *Main) openCache(cli *CLI, logger *slog.Logger) (docserve.CacheStore, error) {
	var cache docserve.CacheStore
	switch cli.CacheBackend {
	case "sqlite":
		if err := os.MkdirAll(cli.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %q: %w", cli.CacheDir, err)
		}
		path := filepath.Join(cli.CacheDir, "cache.db")
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database at %q: %w", path, err)
		}
		c := sqlite.NewCache(m.DB)
		c.TTL = cli.TTL
		cache = c
	default:
		c := fs.NewCache(cli.CacheDir)
		c.TTL = cli.TTL
		cache = c
	}
	return docslog.NewLoggingCacheStore(cache, cli.CacheBackend, logger), nil
}

// newFetcher builds the network tier: plain HTTP by default, or a headless
// browser when --browser is set.
func (m *Main) newFetcher(cli *CLI) (docserve.Fetcher, error) {
	converter := htmltomarkdown.NewConverter()
	extractor := newExtractor(cli.Extractor)

	if cli.Browser {
		f, err := rod.NewFetcher(cli.BaseURL, converter)
		if err != nil {
			return nil, docserve.Errorf(docserve.EUNAVAILABLE, "headless browser unavailable: %v", err)
		}
		f.Extractor = extractor
		m.Browser = f
		return f, nil
	}

	opts := []dochttp.Option{
		dochttp.WithTimeout(cli.Timeout),
		dochttp.WithRetryDelays(retryDelays(cli.Retries)...),
		dochttp.WithConverter(converter),
	}
	if extractor != nil {
		opts = append(opts, dochttp.WithExtractor(extractor))
	}
	if cli.RateLimit > 0 {
		opts = append(opts, dochttp.WithRateLimit(cli.RateLimit))
	}
	return dochttp.NewFetcher(cli.BaseURL, opts...), nil
}

// newExtractor returns the named main-content extractor, or nil for "none".
func newExtractor(name string) docserve.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "none":
		return nil
	default:
		return goquery.NewExtractor()
	}
}

// retryDelays returns n backoff delays starting at 1s and doubling.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
