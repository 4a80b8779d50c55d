package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docserve"
)

// Warmer fills the caches ahead of use.
type Warmer interface {
	Warm(ctx context.Context) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Documents docserve.DocumentService
	Warmer    Warmer
	Cache     docserve.CacheStore
}

// CLI defines the command-line interface structure for Kong.
// Global flags double as configuration and fall back to environment variables.
type CLI struct {
	BaseURL      string        `name:"base-url" env:"DOCSERVE_BASE_URL" help:"Base URL the documents are fetched from"`
	CacheDir     string        `name:"cache-dir" env:"DOCSERVE_CACHE_DIR" default:".docserve-cache" help:"Disk cache directory"`
	CacheBackend string        `name:"cache-backend" env:"DOCSERVE_CACHE_BACKEND" enum:"file,sqlite" default:"file" help:"Disk cache backend (file or sqlite)"`
	TTL          time.Duration `name:"ttl" env:"DOCSERVE_TTL" default:"24h" help:"How long fetched documents stay fresh"`
	Timeout      time.Duration `short:"t" env:"DOCSERVE_TIMEOUT" default:"10s" help:"Fetch timeout"`
	Retries      int           `env:"DOCSERVE_RETRIES" default:"0" help:"Fetch retries with exponential backoff"`
	RateLimit    float64       `name:"rate-limit" env:"DOCSERVE_RATE_LIMIT" default:"0" help:"Max fetches per second (0 for unlimited)"`
	Browser      bool          `env:"DOCSERVE_BROWSER" help:"Render documents in headless Chrome (for JavaScript-only hosts)"`
	Extractor    string        `env:"DOCSERVE_EXTRACTOR" enum:"goquery,readability,trafilatura,none" default:"goquery" help:"Main-content extractor for HTML responses"`
	Tools        []string      `env:"DOCSERVE_TOOLS" sep:"," help:"Tool names listed in the project context of the full document"`
	LogLevel     string        `name:"log-level" env:"DOCSERVE_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn" help:"Log level"`

	Get        GetCmd        `cmd:"" help:"Print a document's table of contents, a section or a page"`
	Warm       WarmCmd       `cmd:"" help:"Fetch all documents into the cache"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Remove cached documents from disk"`
	Serve      ServeCmd      `cmd:"" help:"Serve documents over HTTP"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Type     string  `arg:"" enum:"standard,full" help:"Document type (standard or full)"`
	Section  *string `short:"s" help:"Section title, or part of one"`
	Page     *int    `short:"p" help:"Page number, starting at 1"`
	PageSize int     `name:"page-size" help:"Lines per page (default 5000)"`
	JSON     bool    `name:"json" help:"Print the result and metadata as JSON"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct{}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct {
	Type string `arg:"" optional:"" help:"Document type to clear (default: all)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8080" env:"DOCSERVE_ADDR" help:"Listen address"`
}
