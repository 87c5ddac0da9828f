package domain

// Marker colors shared by the magnitude and alert mappings.
const (
	ColorRed    = "#dc2626"
	ColorOrange = "#f97316"
	ColorYellow = "#eab308"
	ColorBlue   = "#3b82f6"
	ColorGreen  = "#16a34a"
	ColorGray   = "#6b7280"
)

// MagnitudeColor maps a magnitude to a marker color. Each threshold is a
// closed lower bound.
func MagnitudeColor(mag float64) string {
	switch {
	case mag >= 7.0:
		return ColorRed
	case mag >= 6.0:
		return ColorOrange
	case mag >= 5.0:
		return ColorYellow
	case mag >= 4.0:
		return ColorBlue
	default:
		return ColorGray
	}
}

// MagnitudeRadius maps a magnitude to a marker radius in pixels using the same
// ladder as MagnitudeColor.
func MagnitudeRadius(mag float64) int {
	switch {
	case mag >= 7.0:
		return 14
	case mag >= 6.0:
		return 12
	case mag >= 5.0:
		return 10
	case mag >= 4.0:
		return 8
	default:
		return 6
	}
}

// AlertColor maps an alert level to a color; unknown and AlertNone are gray.
func AlertColor(a AlertLevel) string {
	switch a {
	case AlertRed:
		return ColorRed
	case AlertOrange:
		return ColorOrange
	case AlertYellow:
		return ColorYellow
	case AlertGreen:
		return ColorGreen
	default:
		return ColorGray
	}
}
