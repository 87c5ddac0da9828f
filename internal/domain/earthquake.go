package domain

import (
	"encoding/json"
	"errors"
)

// ErrFetchFailed is the single failure category for catalog fetches. Transport
// errors, non-2xx statuses, and undecodable bodies all wrap it.
var ErrFetchFailed = errors.New("earthquake data fetch failed")

// AlertLevel is the USGS PAGER alert assigned to significant events.
type AlertLevel string

const (
	AlertNone   AlertLevel = ""
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertOrange AlertLevel = "orange"
	AlertRed    AlertLevel = "red"
)

// AlertLevels lists the assigned levels from least to most severe.
var AlertLevels = []AlertLevel{AlertGreen, AlertYellow, AlertOrange, AlertRed}

// Valid reports whether a is one of the four assigned levels.
func (a AlertLevel) Valid() bool {
	switch a {
	case AlertGreen, AlertYellow, AlertOrange, AlertRed:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes AlertNone as null, matching the catalog.
func (a AlertLevel) MarshalJSON() ([]byte, error) {
	if a == AlertNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON decodes null as AlertNone.
func (a *AlertLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = AlertNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = AlertLevel(s)
	return nil
}

// Properties holds the per-event fields of a catalog feature.
type Properties struct {
	Mag     float64    `json:"mag"`
	Place   string     `json:"place"`
	Time    int64      `json:"time"`    // epoch ms
	Updated int64      `json:"updated"` // epoch ms
	URL     string     `json:"url"`
	Detail  string     `json:"detail"`
	Alert   AlertLevel `json:"alert"`
	Title   string     `json:"title"`
	Tsunami int        `json:"tsunami"`
	Felt    *int       `json:"felt"`
	CDI     *float64   `json:"cdi"`
	MMI     *float64   `json:"mmi"`
	Sig     int        `json:"sig"`
	Status  string     `json:"status"`
	Type    string     `json:"type"`
	Net     string     `json:"net"`
	Code    string     `json:"code"`
	MagType string     `json:"magType"`
}

// Geometry is a GeoJSON point: [longitude, latitude, depth_km].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature is one earthquake as returned by the catalog. Values are treated as
// immutable once decoded.
type Feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Longitude returns the first coordinate, or 0 if missing.
func (f Feature) Longitude() float64 { return f.coord(0) }

// Latitude returns the second coordinate, or 0 if missing.
func (f Feature) Latitude() float64 { return f.coord(1) }

// Depth returns the depth in kilometers, or 0 if missing.
func (f Feature) Depth() float64 { return f.coord(2) }

func (f Feature) coord(i int) float64 {
	if i < len(f.Geometry.Coordinates) {
		return f.Geometry.Coordinates[i]
	}
	return 0
}

// Metadata describes a catalog response.
type Metadata struct {
	Generated int64  `json:"generated"` // epoch ms
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	API       string `json:"api"`
	Count     int    `json:"count"`
}

// Collection is a GeoJSON FeatureCollection from the catalog. It is always
// replaced as a whole, never patched.
type Collection struct {
	Type     string    `json:"type"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`
}
