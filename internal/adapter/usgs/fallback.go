package usgs

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

//go:embed fallback.json
var fallbackJSON []byte

// Fallback serves a bundled catalog response. It is used when a caller
// supplies no query parameters.
type Fallback struct {
	raw []byte
}

// NewFallback returns the embedded dataset.
func NewFallback() *Fallback {
	return &Fallback{raw: fallbackJSON}
}

// NewFallbackFromBytes serves an arbitrary GeoJSON document, e.g. one written
// by cmd/genfixture.
func NewFallbackFromBytes(raw []byte) *Fallback {
	return &Fallback{raw: raw}
}

// Raw returns the undecoded document for serving as-is.
func (f *Fallback) Raw() []byte {
	return f.raw
}

// Fetch decodes a fresh copy of the document; the query is ignored.
func (f *Fallback) Fetch(_ context.Context, _ domain.QuerySpec) (domain.Collection, error) {
	var coll domain.Collection
	if err := json.Unmarshal(f.raw, &coll); err != nil {
		return domain.Collection{}, fmt.Errorf("%w: decode fallback: %w", domain.ErrFetchFailed, err)
	}
	if coll.Features == nil {
		coll.Features = []domain.Feature{}
	}
	return coll, nil
}
