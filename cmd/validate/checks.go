package main

import (
	"math"

	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/pipeline"
)

func validateAll(coll domain.Collection) []*phase {
	return []*phase{
		validateStructure(coll),
		validateIdentity(coll.Features),
		validateCoordinates(coll.Features),
		validateProperties(coll.Features),
		validateDerivation(coll.Features),
	}
}

// ── Phase 1: Document structure ──

func validateStructure(coll domain.Collection) *phase {
	p := &phase{name: "Phase 1: Document Structure"}

	if coll.Type != "FeatureCollection" {
		p.errorf("type is %q (expected FeatureCollection)", coll.Type)
	}
	if coll.Metadata.Count != len(coll.Features) {
		p.errorf("metadata.count is %d but %d features are present", coll.Metadata.Count, len(coll.Features))
	}
	if len(coll.BBox) != 0 && len(coll.BBox) != 6 {
		p.errorf("bbox has %d values (expected 6)", len(coll.BBox))
	}
	return p
}

// ── Phase 2: Identity ──

func validateIdentity(features []domain.Feature) *phase {
	p := &phase{name: "Phase 2: Event Identity"}

	seen := make(map[string]int, len(features))
	for i := range features {
		f := &features[i]
		if f.Type != "Feature" {
			p.errorf("record %d: type is %q (expected Feature)", i, f.Type)
		}
		if f.ID == "" {
			p.errorf("record %d: id is empty", i)
			continue
		}
		if prev, ok := seen[f.ID]; ok {
			p.errorf("record %d: id %s duplicates record %d", i, f.ID, prev)
			continue
		}
		seen[f.ID] = i
	}
	return p
}

// ── Phase 3: Coordinates ──

func validateCoordinates(features []domain.Feature) *phase {
	p := &phase{name: "Phase 3: Coordinates (Philippines bounds)"}

	for i := range features {
		f := &features[i]
		if f.Geometry.Type != "Point" {
			p.errorf("record %d (ID %s): geometry type is %q", i, f.ID, f.Geometry.Type)
		}
		if n := len(f.Geometry.Coordinates); n != 3 {
			p.errorf("record %d (ID %s): %d coordinates (expected lon, lat, depth)", i, f.ID, n)
			continue
		}
		if !domain.PhilippinesBounds.Contains(f.Latitude(), f.Longitude()) {
			p.errorf("record %d (ID %s): (%g, %g) outside bounding box", i, f.ID, f.Latitude(), f.Longitude())
		}
	}
	return p
}

// ── Phase 4: Property domains ──

func validateProperties(features []domain.Feature) *phase {
	p := &phase{name: "Phase 4: Property Domains"}

	for i := range features {
		f := &features[i]
		pf := func(format string, args ...any) {
			p.errorf("record %d (ID %s): "+format, append([]any{i, f.ID}, args...)...)
		}
		props := f.Properties

		if math.IsNaN(props.Mag) || props.Mag < domain.FilterMinMagnitude || props.Mag > domain.FilterMaxMagnitude {
			pf("magnitude %g outside [%g, %g]", props.Mag, domain.FilterMinMagnitude, domain.FilterMaxMagnitude)
		}
		if props.Alert != domain.AlertNone && !props.Alert.Valid() {
			pf("alert %q not in {green, yellow, orange, red, null}", props.Alert)
		}
		if props.Tsunami != 0 && props.Tsunami != 1 {
			pf("tsunami is %d (expected 0 or 1)", props.Tsunami)
		}
		if props.Time <= 0 {
			pf("time is not set")
		}
		if props.Place == "" {
			pf("place is empty")
		}
		if props.URL == "" {
			pf("url is empty")
		}
		if props.Felt != nil && *props.Felt < 0 {
			pf("felt is negative")
		}
	}
	return p
}

// ── Phase 5: Display derivation ──

func validateDerivation(features []domain.Feature) *phase {
	p := &phase{name: "Phase 5: Display Derivation"}

	view := pipeline.Derive(features, domain.DefaultFilter())
	if len(view.Visible) != countInRange(features) {
		p.errorf("cleared filter shows %d of %d in-range records", len(view.Visible), countInRange(features))
	}
	if len(view.Visible) > 0 && view.Largest == nil {
		p.errorf("largest is missing for a non-empty view")
	}
	if view.Largest != nil {
		for _, f := range view.Visible {
			if f.Properties.Mag > view.Largest.Properties.Mag {
				p.errorf("largest %s (M%g) is smaller than %s (M%g)",
					view.Largest.ID, view.Largest.Properties.Mag, f.ID, f.Properties.Mag)
			}
		}
	}
	for _, m := range pipeline.Markers(view.Visible) {
		if m.Color != domain.MagnitudeColor(m.Magnitude) || m.Radius != domain.MagnitudeRadius(m.Magnitude) {
			p.errorf("marker %s: color/radius do not match magnitude %g", m.ID, m.Magnitude)
		}
	}
	return p
}

func countInRange(features []domain.Feature) int {
	n := 0
	for _, f := range features {
		if f.Properties.Mag >= domain.FilterMinMagnitude && f.Properties.Mag <= domain.FilterMaxMagnitude {
			n++
		}
	}
	return n
}
