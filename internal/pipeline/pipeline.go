// Package pipeline derives what the map shows from a fetched collection and
// the session's display filter. Every function here is pure; callers rerun
// the whole derivation whenever the collection or the filter changes.
package pipeline

import "github.com/jbacule/ph-earthquakes/internal/domain"

// View is the derived display state of one collection under one filter.
type View struct {
	Visible []domain.Feature `json:"visible"`
	Largest *domain.Feature  `json:"largest"`
	Total   int              `json:"total"`
}

// Derive filters features in source order and picks the largest visible
// record. The result never aliases the input slice.
func Derive(features []domain.Feature, f domain.DisplayFilter) View {
	visible := Filter(features, f)
	return View{
		Visible: visible,
		Largest: Largest(visible),
		Total:   len(features),
	}
}

// Filter returns the features that pass every active condition of f.
func Filter(features []domain.Feature, f domain.DisplayFilter) []domain.Feature {
	out := make([]domain.Feature, 0, len(features))
	for _, feat := range features {
		if f.Matches(feat) {
			out = append(out, feat)
		}
	}
	return out
}

// Largest returns the feature with the greatest magnitude, or nil for an
// empty slice. Ties keep the earliest record.
func Largest(features []domain.Feature) *domain.Feature {
	if len(features) == 0 {
		return nil
	}
	best := features[0]
	for _, feat := range features[1:] {
		if feat.Properties.Mag > best.Properties.Mag {
			best = feat
		}
	}
	return &best
}
