//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docserve"
	"github.com/fwojciec/docserve/goquery"
	"github.com/fwojciec/docserve/htmltomarkdown"
	"github.com/fwojciec/docserve/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/llms.txt":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("# Plain\nbody\n"))
		case "/llms-full.txt":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered</title></head>
<body>
<main id="content">Loading...</main>
<script>
document.getElementById('content').innerHTML = '<h1>JavaScript Rendered</h1><p>ok</p>';
</script>
</body>
</html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(srv.URL, htmltomarkdown.NewConverter())
	require.NoError(t, err)
	defer fetcher.Close()
	fetcher.Extractor = goquery.NewExtractor()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("returns text documents as displayed", func(t *testing.T) {
		content, err := fetcher.Fetch(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Contains(t, content, "# Plain")
	})

	t.Run("converts JavaScript-rendered pages", func(t *testing.T) {
		content, err := fetcher.Fetch(ctx, docserve.KindFull)

		require.NoError(t, err)
		assert.Contains(t, content, "# JavaScript Rendered")
		assert.NotContains(t, content, "Loading...")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(canceled, docserve.KindStandard)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
