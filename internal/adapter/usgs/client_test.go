package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	catalogURL        = "https://earthquake.usgs.gov/fdsnws/event/1/query"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     discardLogger(),
	}
}

func weekQuery() domain.QuerySpec {
	return domain.QuerySpec{StartTime: "2024-01-01", EndTime: "2024-01-08", OrderBy: domain.OrderTimeAsc}
}

func TestBuildURL_Scenario(t *testing.T) {
	raw, err := BuildURL(catalogURL, weekQuery())
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "earthquake.usgs.gov", u.Host)
	assert.Equal(t, "/fdsnws/event/1/query", u.Path)
	assert.Equal(t, "geojson", q.Get("format"))
	assert.Equal(t, "2024-01-01", q.Get("starttime"))
	assert.Equal(t, "2024-01-08", q.Get("endtime"))
	assert.Equal(t, "4.478", q.Get("minlatitude"))
	assert.Equal(t, "116.191", q.Get("minlongitude"))
	assert.Equal(t, "21.33", q.Get("maxlatitude"))
	assert.Equal(t, "127.354", q.Get("maxlongitude"))
	assert.Equal(t, "time-asc", q.Get("orderby"))
	assert.False(t, q.Has("minmagnitude"))
	assert.False(t, q.Has("maxmagnitude"))
}

func TestBuildURL_MagnitudeBounds(t *testing.T) {
	minMag, maxMag := 2.5, 6.0
	q := weekQuery()
	q.MinMagnitude = &minMag
	q.MaxMagnitude = &maxMag

	raw, err := BuildURL(catalogURL, q)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "2.5", u.Query().Get("minmagnitude"))
	assert.Equal(t, "6", u.Query().Get("maxmagnitude"))
}

func TestBuildURL_ZeroMagnitudeIsStillSent(t *testing.T) {
	zero := 0.0
	q := weekQuery()
	q.MinMagnitude = &zero

	raw, err := BuildURL(catalogURL, q)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "0", u.Query().Get("minmagnitude"))
}

func TestBuildURL_DefaultOrder(t *testing.T) {
	q := weekQuery()
	q.OrderBy = ""

	raw, err := BuildURL(catalogURL, q)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "magnitude", u.Query().Get("orderby"))
}

func TestBuildURL_DatesVerbatim(t *testing.T) {
	// Inverted and malformed ranges are passed through unchanged.
	q := domain.QuerySpec{StartTime: "2024-02-30", EndTime: "2023-01-01"}

	raw, err := BuildURL(catalogURL, q)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "2024-02-30", u.Query().Get("starttime"))
	assert.Equal(t, "2023-01-01", u.Query().Get("endtime"))
}

func TestBuildURL_BadBase(t *testing.T) {
	_, err := BuildURL("://missing-scheme", weekQuery())
	require.Error(t, err)
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("starttime"))
		assert.Equal(t, "time-asc", r.URL.Query().Get("orderby"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write(fallbackJSON)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	coll, err := c.Fetch(context.Background(), weekQuery())
	require.NoError(t, err)

	assert.Equal(t, "FeatureCollection", coll.Type)
	assert.Equal(t, 5, coll.Metadata.Count)
	require.Len(t, coll.Features, 5)
	assert.Equal(t, "us6000m0n6", coll.Features[0].ID)
	assert.Equal(t, domain.AlertYellow, coll.Features[0].Properties.Alert)
	assert.Equal(t, domain.AlertNone, coll.Features[2].Properties.Alert)
}

func TestClient_Fetch_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	coll, err := testClient(srv.URL).Fetch(context.Background(), weekQuery())
	require.NoError(t, err)
	assert.Empty(t, coll.Features)
	assert.NotNil(t, coll.Features)
}

func TestClient_Fetch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad request", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Error 400: Bad Request\n\nInvalid starttime"))
		}},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(headerContentType, contentTypeJSON)
			_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := testClient(srv.URL).Fetch(context.Background(), weekQuery())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrFetchFailed), "all failures collapse into ErrFetchFailed: %v", err)
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		logger:     discardLogger(),
	}

	_, err := c.Fetch(context.Background(), weekQuery())
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Fetch(ctx, weekQuery())
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallback_Fetch(t *testing.T) {
	coll, err := NewFallback().Fetch(context.Background(), domain.QuerySpec{})
	require.NoError(t, err)
	assert.Len(t, coll.Features, coll.Metadata.Count)

	// Each call decodes a fresh copy.
	coll.Features[0].Properties.Mag = 0
	again, err := NewFallback().Fetch(context.Background(), domain.QuerySpec{})
	require.NoError(t, err)
	assert.Equal(t, 7.6, again.Features[0].Properties.Mag)
}

func TestFallback_Invalid(t *testing.T) {
	_, err := NewFallbackFromBytes([]byte("not json")).Fetch(context.Background(), domain.QuerySpec{})
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFallback_FeaturesInsideBounds(t *testing.T) {
	var coll domain.Collection
	require.NoError(t, json.Unmarshal(NewFallback().Raw(), &coll))
	for _, f := range coll.Features {
		assert.True(t, domain.PhilippinesBounds.Contains(f.Latitude(), f.Longitude()), f.ID)
	}
}

// --- Source ---

type stubFetcher struct {
	calls int
	coll  domain.Collection
	err   error
}

func (s *stubFetcher) Fetch(_ context.Context, _ domain.QuerySpec) (domain.Collection, error) {
	s.calls++
	return s.coll, s.err
}

func TestSource_RoutesEmptyQueryToFallback(t *testing.T) {
	remote := &stubFetcher{coll: domain.Collection{Features: []domain.Feature{{ID: "live"}}}}
	fallback := &stubFetcher{coll: domain.Collection{Features: []domain.Feature{{ID: "bundled"}}}}
	src := NewSource(remote, fallback, observability.NewMetricsForTesting())

	coll, err := src.Fetch(context.Background(), domain.QuerySpec{})
	require.NoError(t, err)
	assert.Equal(t, "bundled", coll.Features[0].ID)

	coll, err = src.Fetch(context.Background(), weekQuery())
	require.NoError(t, err)
	assert.Equal(t, "live", coll.Features[0].ID)

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestSource_NoCaching(t *testing.T) {
	remote := &stubFetcher{}
	src := NewSource(remote, &stubFetcher{}, observability.NewMetricsForTesting())

	for range 3 {
		_, err := src.Fetch(context.Background(), weekQuery())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, remote.calls)
}

func TestSource_PropagatesError(t *testing.T) {
	remote := &stubFetcher{err: domain.ErrFetchFailed}
	src := NewSource(remote, &stubFetcher{}, observability.NewMetricsForTesting())

	_, err := src.Fetch(context.Background(), weekQuery())
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}
