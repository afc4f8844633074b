package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, status int, page string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

// localFetch lets tests reach httptest servers on the loopback interface.
func localFetch() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.AllowPrivateHosts = true
	return opts
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"no scheme", "example.com"},
		{"no host", "http://"},
		{"unsupported scheme", "ftp://example.com/job"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := IngestFromURL(context.Background(), tt.urlStr, URLOptions{Fetch: localFetch()})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)

			var fetchErr *fetch.Error
			require.ErrorAs(t, err, &fetchErr)
			assert.True(t, fetchErr.InvalidURL())
		})
	}
}

func TestIngestFromURL_Success(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Backend Engineer</h1>
<p>Python and Docker required.</p>
</main>
<footer>Footer</footer>
</body>
</html>`)

	text, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch()})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nPython and Docker required.", text)
	require.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Equal(t, string(fetch.PlatformUnknown), metadata.Platform)
	assert.False(t, metadata.Rendered)
	assert.Len(t, metadata.Hash, 64)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := serveHTML(t, http.StatusNotFound, "not found")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.False(t, fetchErr.InvalidURL())
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><nav>Only navigation</nav></body></html>")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestIngestFromURL_RendersShortPages(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><div id="root">Loading</div></body></html>`)
	rendered := "<html><body><main><p>" + strings.Repeat("Kubernetes and Terraform experience. ", 20) + "</p></main></body></html>"

	var calls int
	renderer := func(_ context.Context, url string) (string, error) {
		calls++
		assert.Equal(t, server.URL, url)
		return rendered, nil
	}

	text, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch(), Renderer: renderer})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, text, "Kubernetes and Terraform experience.")
	assert.True(t, metadata.Rendered)
}

func TestIngestFromURL_RenderFailureKeepsStaticText(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><main>Short posting</main></body></html>`)
	renderer := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	text, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch(), Renderer: renderer})
	require.NoError(t, err)
	assert.Equal(t, "Short posting", text)
	assert.False(t, metadata.Rendered)
}

func TestIngestFromURL_LongPageSkipsRenderer(t *testing.T) {
	body := strings.Repeat("Go services and PostgreSQL. ", 30)
	server := serveHTML(t, http.StatusOK, "<html><body><main>"+body+"</main></body></html>")
	renderer := func(context.Context, string) (string, error) {
		t.Fatal("renderer should not be called for long pages")
		return "", nil
	}

	_, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: localFetch(), Renderer: renderer})
	require.NoError(t, err)
	assert.False(t, metadata.Rendered)
}

func TestIngestFromURL_CustomUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><main>Rust engineer</main></body></html>"))
	}))
	defer server.Close()

	opts := localFetch()
	opts.UserAgent = "skillmatch-test"
	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetch: opts})
	require.NoError(t, err)
	assert.Equal(t, "skillmatch-test", gotAgent)
}

func TestIngestFromURL_PrivateHostBlockedByDefault(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><main>Python and Docker required.</main></body></html>`)
	rendered := false
	renderer := func(context.Context, string) (string, error) {
		rendered = true
		return "", nil
	}

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{Renderer: renderer})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.ErrorIs(t, err, fetch.ErrBlockedAddress)
	assert.False(t, rendered)
}
