// Package domain models USGS earthquake catalog data for the Philippines.
//
// # Data Source
//
// Events come from the USGS FDSN event web service
// (https://earthquake.usgs.gov/fdsnws/event/1/), queried in GeoJSON format.
// Every query is constrained to a fixed rectangle around the Philippine
// archipelago, see [PhilippinesBounds]. A bundled copy of one response is
// served as a fallback when a caller supplies no query parameters.
//
// # GeoJSON Conventions
//
// Coordinates:
//
//	geometry.coordinates = [longitude, latitude, depth]
//	Longitude comes first. Depth is in kilometers, positive downward.
//
// Time:
//
//	properties.time and properties.updated are epoch milliseconds (UTC).
//	Query dates (starttime/endtime) are calendar dates "YYYY-MM-DD" and are
//	passed through verbatim; no timezone conversion happens here.
//
// Alert level:
//
//	PAGER alert, one of "green", "yellow", "orange", "red", or null for events
//	that were never assessed. Null decodes to [AlertNone].
//
// Tsunami:
//
//	0 or 1. 1 means the event is large and oceanic enough that a tsunami
//	warning center product was linked; it does not mean a tsunami occurred.
//
// Felt:
//
//	Count of "Did You Feel It?" responses, null when nobody reported.
//
// # Display Mapping
//
// Magnitude drives both marker color and marker radius with the same closed
// lower-bound ladder:
//
//	>= 7.0  red     radius 14
//	>= 6.0  orange  radius 12
//	>= 5.0  yellow  radius 10
//	>= 4.0  blue    radius 8
//	else    gray    radius 6
//
// The ladder is total: negative magnitudes (common for microseismic events)
// and NaN fall through to the last band.
package domain
