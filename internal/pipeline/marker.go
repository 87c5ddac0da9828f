package pipeline

import (
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// MarkerRecord is what the map and the list panel render for one earthquake.
type MarkerRecord struct {
	ID         string            `json:"id"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Depth      float64           `json:"depth_km"`
	Magnitude  float64           `json:"magnitude"`
	Color      string            `json:"color"`
	Radius     int               `json:"radius"`
	Alert      domain.AlertLevel `json:"alert"`
	AlertColor string            `json:"alert_color"`
	Place      string            `json:"place"`
	Time       time.Time         `json:"time"`
	URL        string            `json:"url"`
	Tsunami    bool              `json:"tsunami"`
	Felt       *int              `json:"felt,omitempty"`
}

// Marker builds the presentation record for a feature.
func Marker(f domain.Feature) MarkerRecord {
	p := f.Properties
	return MarkerRecord{
		ID:         f.ID,
		Latitude:   f.Latitude(),
		Longitude:  f.Longitude(),
		Depth:      f.Depth(),
		Magnitude:  p.Mag,
		Color:      domain.MagnitudeColor(p.Mag),
		Radius:     domain.MagnitudeRadius(p.Mag),
		Alert:      p.Alert,
		AlertColor: domain.AlertColor(p.Alert),
		Place:      p.Place,
		Time:       time.UnixMilli(p.Time).UTC(),
		URL:        p.URL,
		Tsunami:    p.Tsunami == 1,
		Felt:       p.Felt,
	}
}

// Markers maps Marker over features, preserving order.
func Markers(features []domain.Feature) []MarkerRecord {
	out := make([]MarkerRecord, len(features))
	for i, f := range features {
		out[i] = Marker(f)
	}
	return out
}
