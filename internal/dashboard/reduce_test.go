package dashboard

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection(ids ...string) domain.Collection {
	features := make([]domain.Feature, len(ids))
	for i, id := range ids {
		features[i] = domain.Feature{Type: "Feature", ID: id}
	}
	return domain.Collection{Type: "FeatureCollection", Features: features, Metadata: domain.Metadata{Count: len(ids)}}
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, domain.DefaultThemeID, s.ThemeID)
	assert.True(t, s.Filter.IsCleared())
	assert.Equal(t, domain.OrderMagnitudeDesc, s.Query.OrderBy)
	assert.Nil(t, s.Collection)
	assert.Nil(t, s.Features())
}

func TestReduce_FetchLifecycle(t *testing.T) {
	at := time.Date(2024, time.January, 8, 3, 0, 0, 0, time.UTC)

	s := Reduce(NewState(), FetchStarted{Generation: 1})
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, uint64(1), s.Generation)

	s = Reduce(s, FetchSucceeded{Generation: 1, Collection: sampleCollection("a", "b"), At: at})
	assert.Equal(t, StatusReady, s.Status)
	assert.Empty(t, s.Err)
	assert.Equal(t, at, s.FetchedAt)
	require.NotNil(t, s.Collection)
	assert.Len(t, s.Features(), 2)
}

func TestReduce_LoadingKeepsPreviousCollection(t *testing.T) {
	s := Reduce(NewState(), FetchStarted{Generation: 1})
	s = Reduce(s, FetchSucceeded{Generation: 1, Collection: sampleCollection("a")})
	s = Reduce(s, FetchStarted{Generation: 2})

	assert.Equal(t, StatusLoading, s.Status)
	require.NotNil(t, s.Collection)
	assert.Equal(t, "a", s.Features()[0].ID)
}

func TestReduce_FailureDiscardsCollection(t *testing.T) {
	s := Reduce(NewState(), FetchStarted{Generation: 1})
	s = Reduce(s, FetchSucceeded{Generation: 1, Collection: sampleCollection("a")})
	s = Reduce(s, FetchStarted{Generation: 2})
	s = Reduce(s, FetchFailed{Generation: 2})

	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, FetchErrorMessage, s.Err)
	assert.Nil(t, s.Collection)
}

func TestReduce_RetryClearsError(t *testing.T) {
	s := Reduce(NewState(), FetchStarted{Generation: 1})
	s = Reduce(s, FetchFailed{Generation: 1})
	s = Reduce(s, FetchStarted{Generation: 2})

	assert.Equal(t, StatusLoading, s.Status)
	assert.Empty(t, s.Err)
}

func TestReduce_StaleResultsIgnored(t *testing.T) {
	s := Reduce(NewState(), FetchStarted{Generation: 1})
	s = Reduce(s, FetchStarted{Generation: 2})

	before := s
	s = Reduce(s, FetchSucceeded{Generation: 1, Collection: sampleCollection("old")})
	assert.Equal(t, before, s)

	s = Reduce(s, FetchFailed{Generation: 1})
	assert.Equal(t, before, s)

	s = Reduce(s, FetchSucceeded{Generation: 2, Collection: sampleCollection("new")})
	assert.Equal(t, "new", s.Features()[0].ID)
	assert.True(t, IsStale(s, 1))
	assert.False(t, IsStale(s, 2))
}

func TestReduce_SetQueryDoesNotFetch(t *testing.T) {
	minMag := 4.5
	q := domain.QuerySpec{StartTime: "2024-01-01", EndTime: "2024-01-08", MinMagnitude: &minMag, OrderBy: domain.OrderTimeAsc}

	s := Reduce(NewState(), SetQuery{Query: q})
	assert.Equal(t, q, s.Query)
	assert.Equal(t, StatusIdle, s.Status)
	assert.Zero(t, s.Generation)
}

func TestReduce_Filters(t *testing.T) {
	alerts := []domain.AlertLevel{domain.AlertRed, domain.AlertOrange}
	f := domain.DisplayFilter{MinMagnitude: 3, MaxMagnitude: 8, AlertLevels: alerts, TsunamiOnly: true}

	s := Reduce(NewState(), SetFilter{Filter: f})
	if diff := cmp.Diff(f, s.Filter); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	// The stored filter owns its alert slice.
	alerts[0] = domain.AlertGreen
	assert.Equal(t, domain.AlertRed, s.Filter.AlertLevels[0])

	s = Reduce(s, ClearFilters{})
	if diff := cmp.Diff(domain.DefaultFilter(), s.Filter, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("cleared filter mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SetTheme(t *testing.T) {
	s := Reduce(NewState(), SetTheme{ID: "cartodb-dark"})
	assert.Equal(t, "cartodb-dark", s.ThemeID)

	s = Reduce(s, SetTheme{ID: "no-such-theme"})
	assert.Equal(t, "cartodb-dark", s.ThemeID)
}

func TestReduce_FilterIndependentOfCollection(t *testing.T) {
	s := Reduce(NewState(), FetchStarted{Generation: 1})
	s = Reduce(s, FetchSucceeded{Generation: 1, Collection: sampleCollection("a", "b")})
	coll := s.Collection

	s = Reduce(s, SetFilter{Filter: domain.DisplayFilter{MinMagnitude: 9, MaxMagnitude: 10}})
	assert.Same(t, coll, s.Collection)
}
