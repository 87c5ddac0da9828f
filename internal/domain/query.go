package domain

import (
	"errors"
	"time"
)

// ErrUnknownPreset is returned for a date preset name outside Presets.
var ErrUnknownPreset = errors.New("unknown date preset")

// DateLayout is the calendar date format the catalog accepts for
// starttime/endtime.
const DateLayout = "2006-01-02"

// OrderBy selects server-side ordering of the catalog response. The values are
// the catalog's own vocabulary.
type OrderBy string

const (
	OrderMagnitudeDesc OrderBy = "magnitude"
	OrderMagnitudeAsc  OrderBy = "magnitude-asc"
	OrderTimeDesc      OrderBy = "time"
	OrderTimeAsc       OrderBy = "time-asc"
)

// Valid reports whether o is one of the four orderings.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderMagnitudeDesc, OrderMagnitudeAsc, OrderTimeDesc, OrderTimeAsc:
		return true
	default:
		return false
	}
}

// OrDefault returns o, or magnitude descending when o is empty.
func (o OrderBy) OrDefault() OrderBy {
	if o == "" {
		return OrderMagnitudeDesc
	}
	return o
}

// BoundingBox is a lat/long rectangle in degrees.
type BoundingBox struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// Contains reports whether the point lies inside b, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLatitude && lat <= b.MaxLatitude &&
		lon >= b.MinLongitude && lon <= b.MaxLongitude
}

// PhilippinesBounds constrains every catalog query.
var PhilippinesBounds = BoundingBox{
	MinLatitude:  4.478,
	MinLongitude: 116.191,
	MaxLatitude:  21.33,
	MaxLongitude: 127.354,
}

// QuerySpec holds the user-controlled catalog request parameters. Dates are
// passed through verbatim; an inverted or malformed range is the catalog's
// problem. Nil magnitude bounds leave the catalog default in place.
type QuerySpec struct {
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	MinMagnitude *float64 `json:"min_magnitude,omitempty"`
	MaxMagnitude *float64 `json:"max_magnitude,omitempty"`
	OrderBy      OrderBy  `json:"order_by,omitempty"`
}

// IsZero reports whether no parameters were supplied at all, which selects the
// bundled fallback dataset.
func (q QuerySpec) IsZero() bool {
	return q.StartTime == "" && q.EndTime == "" &&
		q.MinMagnitude == nil && q.MaxMagnitude == nil && q.OrderBy == ""
}

// DefaultQuery is the last seven days ordered by magnitude, descending.
func DefaultQuery() QuerySpec {
	start, end := DateRange(7)
	return QuerySpec{StartTime: start, EndTime: end, OrderBy: OrderMagnitudeDesc}
}

// DateRange returns start and end dates covering the last days days, ending
// today on the package clock.
func DateRange(days int) (start, end string) {
	now := clock.Now()
	return FormatDate(now.AddDate(0, 0, -days)), FormatDate(now)
}

// FormatDate renders t as a catalog calendar date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Presets maps the quick date range names to a number of days.
var Presets = map[string]int{
	"24h": 1,
	"7d":  7,
	"30d": 30,
}

// WithPreset returns q with its date range replaced by the named preset.
// Magnitude bounds and ordering are kept.
func (q QuerySpec) WithPreset(name string) (QuerySpec, error) {
	days, ok := Presets[name]
	if !ok {
		return q, ErrUnknownPreset
	}
	q.StartTime, q.EndTime = DateRange(days)
	return q, nil
}
