package usgs

import (
	"context"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/observability"
)

type fetcher interface {
	Fetch(ctx context.Context, q domain.QuerySpec) (domain.Collection, error)
}

// Source picks the live catalog or the bundled fallback per query and records
// fetch metrics. It implements dashboard.Catalog.
type Source struct {
	remote   fetcher
	fallback fetcher
	metrics  *observability.Metrics
}

// NewSource combines the live client with the fallback dataset.
func NewSource(remote, fallback fetcher, metrics *observability.Metrics) *Source {
	return &Source{remote: remote, fallback: fallback, metrics: metrics}
}

// Fetch serves an empty query from the fallback and everything else from the
// live catalog.
func (s *Source) Fetch(ctx context.Context, q domain.QuerySpec) (domain.Collection, error) {
	source, f := "remote", s.remote
	if q.IsZero() {
		source, f = "fallback", s.fallback
	}

	start := time.Now()
	coll, err := f.Fetch(ctx, q)
	s.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.FetchRequests.WithLabelValues(source, "error").Inc()
		return domain.Collection{}, err
	}
	s.metrics.FetchRequests.WithLabelValues(source, "success").Inc()
	s.metrics.FeaturesFetched.Observe(float64(len(coll.Features)))
	return coll, nil
}
