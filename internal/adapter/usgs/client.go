package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// Client fetches earthquakes from the USGS FDSN event service. Every call is
// a fresh GET: no retry, no backoff, no response cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a catalog client. A zero timeout leaves requests bounded
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch runs the query and decodes the GeoJSON response. Any failure wraps
// domain.ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, q domain.QuerySpec) (domain.Collection, error) {
	u, err := BuildURL(c.baseURL, q)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%w: create request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	c.logger.Debug("usgs request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%w: usgs request: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Collection{}, fmt.Errorf("%w: usgs API error: status %d: %s", domain.ErrFetchFailed, resp.StatusCode, body)
	}

	// The catalog answers 204 with an empty body when nothing matches.
	if resp.StatusCode == http.StatusNoContent {
		return domain.Collection{Type: "FeatureCollection", Features: []domain.Feature{}}, nil
	}

	var coll domain.Collection
	if err := json.NewDecoder(resp.Body).Decode(&coll); err != nil {
		return domain.Collection{}, fmt.Errorf("%w: decode response: %w", domain.ErrFetchFailed, err)
	}
	if coll.Features == nil {
		coll.Features = []domain.Feature{}
	}
	return coll, nil
}
