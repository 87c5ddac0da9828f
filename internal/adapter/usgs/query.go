package usgs

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// BuildURL renders a catalog request for q against base. The Philippines
// bounding box and GeoJSON format are always present; magnitude bounds are
// added only when set.
func BuildURL(base string, q domain.QuerySpec) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	b := domain.PhilippinesBounds
	params := u.Query()
	params.Set("format", "geojson")
	params.Set("starttime", q.StartTime)
	params.Set("endtime", q.EndTime)
	params.Set("minlatitude", formatFloat(b.MinLatitude))
	params.Set("minlongitude", formatFloat(b.MinLongitude))
	params.Set("maxlatitude", formatFloat(b.MaxLatitude))
	params.Set("maxlongitude", formatFloat(b.MaxLongitude))
	params.Set("orderby", string(q.OrderBy.OrDefault()))

	if q.MinMagnitude != nil {
		params.Set("minmagnitude", formatFloat(*q.MinMagnitude))
	}
	if q.MaxMagnitude != nil {
		params.Set("maxmagnitude", formatFloat(*q.MaxMagnitude))
	}

	u.RawQuery = params.Encode()
	return u.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
