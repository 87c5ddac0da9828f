package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

func validFeature(id string) domain.Feature {
	return domain.Feature{
		Type: "Feature",
		ID:   id,
		Properties: domain.Properties{
			Mag:   5.1,
			Place: "near Manila",
			Time:  1701522037453,
			URL:   "https://earthquake.usgs.gov/earthquakes/eventpage/" + id,
			Alert: domain.AlertGreen,
		},
		Geometry: domain.Geometry{Type: "Point", Coordinates: []float64{121.0, 14.6, 10}},
	}
}

func TestValidateAll_BundledFixture(t *testing.T) {
	coll, err := loadCollection(filepath.Join("..", "..", "internal", "adapter", "usgs", "fallback.json"))
	require.NoError(t, err)

	for _, p := range validateAll(coll) {
		assert.True(t, p.passed(), "%s: %v", p.name, p.errors)
	}
}

func TestValidateStructure_CountMismatch(t *testing.T) {
	coll := domain.Collection{
		Type:     "FeatureCollection",
		Metadata: domain.Metadata{Count: 3},
		Features: []domain.Feature{validFeature("a")},
	}
	p := validateStructure(coll)
	require.False(t, p.passed())
	assert.Contains(t, p.errors[0], "metadata.count")
}

func TestValidateIdentity_Duplicates(t *testing.T) {
	p := validateIdentity([]domain.Feature{validFeature("a"), validFeature("b"), validFeature("a")})
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "duplicates record 0")
}

func TestValidateCoordinates(t *testing.T) {
	outside := validFeature("tokyo")
	outside.Geometry.Coordinates = []float64{139.7, 35.7, 10}
	short := validFeature("short")
	short.Geometry.Coordinates = []float64{121.0}

	p := validateCoordinates([]domain.Feature{validFeature("ok"), outside, short})
	assert.Len(t, p.errors, 2)
}

func TestValidateProperties(t *testing.T) {
	bad := validFeature("bad")
	bad.Properties.Alert = "purple"
	bad.Properties.Tsunami = 2
	bad.Properties.Mag = 11

	p := validateProperties([]domain.Feature{validFeature("ok"), bad})
	assert.Len(t, p.errors, 3)
}

func TestValidateDerivation(t *testing.T) {
	p := validateDerivation([]domain.Feature{validFeature("a"), validFeature("b")})
	assert.True(t, p.passed(), p.errors)
}
