package pipeline_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_WithFallbackFixture(t *testing.T) {
	coll := readFixture(t)
	require.Len(t, coll.Features, 5)

	cases := []struct {
		name        string
		filter      domain.DisplayFilter
		wantIDs     []string
		wantLargest string
	}{
		{
			name:        "cleared",
			filter:      domain.DefaultFilter(),
			wantIDs:     []string{"us6000m0n6", "us6000m0pj", "us6000m0v2", "us6000m1a7", "us6000m1c3"},
			wantLargest: "us6000m0n6",
		},
		{
			name:        "moderate band",
			filter:      domain.DisplayFilter{MinMagnitude: 4.5, MaxMagnitude: 6.0},
			wantIDs:     []string{"us6000m0v2", "us6000m1a7"},
			wantLargest: "us6000m0v2",
		},
		{
			name:        "green alerts",
			filter:      domain.DisplayFilter{MinMagnitude: 0, MaxMagnitude: 10, AlertLevels: []domain.AlertLevel{domain.AlertGreen}},
			wantIDs:     []string{"us6000m0pj"},
			wantLargest: "us6000m0pj",
		},
		{
			name:        "tsunami only",
			filter:      domain.DisplayFilter{MinMagnitude: 0, MaxMagnitude: 10, TsunamiOnly: true},
			wantIDs:     []string{"us6000m0n6", "us6000m0pj"},
			wantLargest: "us6000m0n6",
		},
		{
			name:    "combined excludes all",
			filter:  domain.DisplayFilter{MinMagnitude: 0, MaxMagnitude: 7, TsunamiOnly: true, AlertLevels: []domain.AlertLevel{domain.AlertYellow}},
			wantIDs: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := pipeline.Derive(coll.Features, tc.filter)
			assert.Equal(t, tc.wantIDs, ids(view.Visible))
			assert.Equal(t, len(coll.Features), view.Total)
			if tc.wantLargest == "" {
				assert.Nil(t, view.Largest)
				return
			}
			require.NotNil(t, view.Largest)
			assert.Equal(t, tc.wantLargest, view.Largest.ID)
		})
	}
}

func TestMarkers_WithFallbackFixture(t *testing.T) {
	coll := readFixture(t)

	for _, m := range pipeline.Markers(coll.Features) {
		assert.True(t, domain.PhilippinesBounds.Contains(m.Latitude, m.Longitude), m.ID)
		assert.NotEmpty(t, m.Place)
		assert.NotEmpty(t, m.URL)
		assert.False(t, m.Time.IsZero())
		assert.Equal(t, domain.MagnitudeColor(m.Magnitude), m.Color)
	}
}

func readFixture(t *testing.T) domain.Collection {
	t.Helper()

	path := filepath.Join("..", "adapter", "usgs", "fallback.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var coll domain.Collection
	require.NoError(t, json.Unmarshal(data, &coll))
	return coll
}
