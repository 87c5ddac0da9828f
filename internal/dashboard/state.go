// Package dashboard holds per-session dashboard state: the catalog query, the
// display filter, the selected map theme, and the most recently fetched
// collection.
//
// State only changes through Reduce, which is pure. A Session serializes
// access to one State, drives catalog fetches, and queues imperative map
// commands (fly to a point, open a popup) for the browser to drain. Sessions
// live in a Store bounded by least-recently-used eviction.
//
// Each fetch is stamped with a generation number. A result is applied only if
// its generation is still the latest one issued for the session; anything
// older is dropped, so a slow response can never overwrite a newer query.
package dashboard

import (
	"errors"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// FetchErrorMessage is the only failure text ever shown to users.
const FetchErrorMessage = "Failed to fetch from USGS API. Please check your connection or try again."

var (
	// ErrSessionNotFound is returned for an unknown or evicted session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEarthquakeNotFound is returned when locating an id that is not visible.
	ErrEarthquakeNotFound = errors.New("earthquake not found")
	// ErrInvalidQuery is returned for a query with an unknown ordering or a
	// non-finite magnitude bound.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidFilter is returned for a filter naming an unknown alert level.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Status is the lifecycle of the session's collection.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is one session's dashboard. Collection is nil until the first
// successful fetch and again after a failed one.
type State struct {
	Query      domain.QuerySpec     `json:"query"`
	Filter     domain.DisplayFilter `json:"filter"`
	ThemeID    string               `json:"theme_id"`
	Collection *domain.Collection   `json:"-"`
	Status     Status               `json:"status"`
	Err        string               `json:"error,omitempty"`
	Generation uint64               `json:"generation"`
	FetchedAt  time.Time            `json:"fetched_at,omitzero"`
}

// NewState is the dashboard a fresh session starts from: the last seven days
// by magnitude, no display filter, the default theme.
func NewState() State {
	return State{
		Query:   domain.DefaultQuery(),
		Filter:  domain.DefaultFilter(),
		ThemeID: domain.DefaultThemeID,
		Status:  StatusIdle,
	}
}

// Features returns the fetched records, or nil without a collection.
func (s State) Features() []domain.Feature {
	if s.Collection == nil {
		return nil
	}
	return s.Collection.Features
}
