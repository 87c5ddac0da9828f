package domain

import "slices"

// Magnitude bounds of a cleared display filter.
const (
	FilterMinMagnitude = 0.0
	FilterMaxMagnitude = 10.0
)

// DisplayFilter narrows a fetched collection locally. It is never sent to the
// catalog. A nil or empty AlertLevels accepts every record, including those
// without an alert.
type DisplayFilter struct {
	MinMagnitude float64      `json:"min_magnitude"`
	MaxMagnitude float64      `json:"max_magnitude"`
	AlertLevels  []AlertLevel `json:"alert_levels"`
	TsunamiOnly  bool         `json:"tsunami_only"`
}

// DefaultFilter accepts everything in the 0-10 magnitude range.
func DefaultFilter() DisplayFilter {
	return DisplayFilter{
		MinMagnitude: FilterMinMagnitude,
		MaxMagnitude: FilterMaxMagnitude,
	}
}

// IsCleared reports whether f is equivalent to DefaultFilter.
func (f DisplayFilter) IsCleared() bool {
	return f.MinMagnitude == FilterMinMagnitude &&
		f.MaxMagnitude == FilterMaxMagnitude &&
		len(f.AlertLevels) == 0 &&
		!f.TsunamiOnly
}

// Matches reports whether a feature passes every active condition.
func (f DisplayFilter) Matches(feat Feature) bool {
	p := feat.Properties
	if p.Mag < f.MinMagnitude || p.Mag > f.MaxMagnitude {
		return false
	}
	if len(f.AlertLevels) > 0 {
		if p.Alert == AlertNone || !slices.Contains(f.AlertLevels, p.Alert) {
			return false
		}
	}
	if f.TsunamiOnly && p.Tsunami != 1 {
		return false
	}
	return true
}
