package dashboard

import (
	"slices"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// Action is a state transition accepted by Reduce.
type Action interface {
	action()
}

// SetQuery replaces the catalog query. It does not fetch.
type SetQuery struct{ Query domain.QuerySpec }

// SetFilter replaces the display filter as a whole.
type SetFilter struct{ Filter domain.DisplayFilter }

// ClearFilters restores the default display filter.
type ClearFilters struct{}

// SetTheme selects a map theme. Unknown ids are ignored.
type SetTheme struct{ ID string }

// FetchStarted marks a fetch with the given generation as in flight.
type FetchStarted struct{ Generation uint64 }

// FetchSucceeded delivers a collection for a generation.
type FetchSucceeded struct {
	Generation uint64
	Collection domain.Collection
	At         time.Time
}

// FetchFailed reports that the fetch for a generation failed.
type FetchFailed struct{ Generation uint64 }

func (SetQuery) action()       {}
func (SetFilter) action()      {}
func (ClearFilters) action()   {}
func (SetTheme) action()       {}
func (FetchStarted) action()   {}
func (FetchSucceeded) action() {}
func (FetchFailed) action()    {}

// Reduce applies a to s and returns the new state. Fetch results whose
// generation is not s.Generation leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetQuery:
		s.Query = a.Query
	case SetFilter:
		s.Filter = a.Filter
		s.Filter.AlertLevels = slices.Clone(a.Filter.AlertLevels)
	case ClearFilters:
		s.Filter = domain.DefaultFilter()
	case SetTheme:
		if _, ok := domain.ThemeByID(a.ID); ok {
			s.ThemeID = a.ID
		}
	case FetchStarted:
		s.Generation = a.Generation
		s.Status = StatusLoading
		s.Err = ""
	case FetchSucceeded:
		if IsStale(s, a.Generation) {
			return s
		}
		coll := a.Collection
		s.Collection = &coll
		s.Status = StatusReady
		s.Err = ""
		s.FetchedAt = a.At
	case FetchFailed:
		if IsStale(s, a.Generation) {
			return s
		}
		s.Collection = nil
		s.Status = StatusError
		s.Err = FetchErrorMessage
	}
	return s
}

// IsStale reports whether a fetch result for generation must be discarded.
func IsStale(s State, generation uint64) bool {
	return generation != s.Generation
}
