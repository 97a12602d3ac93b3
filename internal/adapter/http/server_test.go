package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpadapter "github.com/couchcryptid/quake-report/internal/adapter/http"
	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockPages struct {
	err     error
	lastArg string
}

func (m *mockPages) page(name, arg string) (string, error) {
	m.lastArg = arg
	if m.err != nil {
		return "", m.err
	}
	return fmt.Sprintf("<p>%s %s</p>", name, arg), nil
}

func (m *mockPages) Index(context.Context) (string, error) { return m.page("index", "") }

func (m *mockPages) Location(_ context.Context, loc string) (string, error) {
	return m.page("location", loc)
}

func (m *mockPages) Magnitude(_ context.Context, raw string) (string, error) {
	return m.page("magnitude", raw)
}

func (m *mockPages) Depth(_ context.Context, raw string) (string, error) {
	return m.page("depth", raw)
}

func newTestServer(t *testing.T, pages *mockPages, readyErr error, opts ...httpadapter.Option) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	opts = append([]httpadapter.Option{httpadapter.WithClock(clockwork.NewFakeClock())}, opts...)
	return httpadapter.NewServer(":0", pages, &mockReadiness{err: readyErr}, metrics, slog.Default(), opts...), metrics
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPageRoutes(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantArg string
	}{
		{"/", "<p>index </p>", ""},
		{"/location/us", "<p>location us</p>", "us"},
		{"/location/New%20Zealand", "<p>location New Zealand</p>", "New Zealand"},
		{"/magnitude/4", "<p>magnitude 4</p>", "4"},
		{"/depth/2", "<p>depth 2</p>", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			pages := &mockPages{}
			srv, _ := newTestServer(t, pages, nil)

			rec := get(srv, tt.path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, tt.wantArg, pages.lastArg)
		})
	}
}

func TestNotFoundIs404(t *testing.T) {
	pages := &mockPages{err: &domain.NotFoundError{Dimension: domain.DimensionLocation, Value: "Nonexistent"}}
	srv, _ := newTestServer(t, pages, nil)

	rec := get(srv, "/location/Nonexistent")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Location not found: Nonexistent", rec.Body.String())
}

func TestStoreErrorIs500(t *testing.T) {
	pages := &mockPages{err: &domain.StoreError{Op: "list_locations", Err: errors.New("disk I/O error")}}
	srv, _ := newTestServer(t, pages, nil)

	rec := get(srv, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SQL Error", rec.Body.String())
}

func TestRenderErrorIs500(t *testing.T) {
	srv, _ := newTestServer(t, &mockPages{err: errors.New("unknown template")}, nil)

	rec := get(srv, "/depth/1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", rec.Body.String())
}

func TestRequestMetrics(t *testing.T) {
	srv, metrics := newTestServer(t, &mockPages{}, nil)

	get(srv, "/magnitude/1")
	get(srv, "/magnitude/2")

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/magnitude/{mag}", "200")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}

func TestRequestMetrics_RecordsStatus(t *testing.T) {
	pages := &mockPages{err: &domain.NotFoundError{Dimension: domain.DimensionDepth, Value: "9"}}
	srv, metrics := newTestServer(t, pages, nil)

	get(srv, "/depth/9")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/depth/{dep}", "404")), 0)
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body{}"), 0o644))

	srv, _ := newTestServer(t, &mockPages{}, nil, httpadapter.WithPublicDir(dir))

	rec := get(srv, "/css/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(srv, "/images/missing.png").Code)
	assert.Equal(t, "<p>index </p>", get(srv, "/").Body.String())
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, &mockPages{}, nil)
	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, &mockPages{}, nil)
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, &mockPages{}, fmt.Errorf("database is closed"))
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "database is closed", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &mockPages{}, nil)
	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
