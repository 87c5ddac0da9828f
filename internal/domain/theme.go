package domain

import "errors"

// ErrUnknownTheme is returned when a theme id is not one of MapThemes.
var ErrUnknownTheme = errors.New("unknown map theme")

// MapTheme is a static tile-layer preset for the browser map.
type MapTheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Description string `json:"description"`
}

// DefaultThemeID is the theme new sessions start with.
const DefaultThemeID = "cartodb-positron"

const (
	osmAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	cartoAttribution = osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`
)

// MapThemes lists the available presets in display order.
var MapThemes = []MapTheme{
	{
		ID:          "cartodb-positron",
		Name:        "Light (Positron)",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png",
		Attribution: cartoAttribution,
		Description: "Clean, minimal style - best for data visualization",
	},
	{
		ID:          "openstreetmap",
		Name:        "OpenStreetMap",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
		Description: "Standard OpenStreetMap style",
	},
	{
		ID:          "cartodb-dark",
		Name:        "Dark (Dark Matter)",
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}.png",
		Attribution: cartoAttribution,
		Description: "Dark theme - modern look with excellent contrast",
	},
	{
		ID:   "opentopomap",
		Name: "Topographic",
		URL:  "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: `Map data: ` + osmAttribution +
			`, <a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> (<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
		Description: "Detailed topographic map with contour lines",
	},
}

// ThemeByID looks up a preset.
func ThemeByID(id string) (MapTheme, bool) {
	for _, t := range MapThemes {
		if t.ID == id {
			return t, true
		}
	}
	return MapTheme{}, false
}

// MapView is the initial camera of the browser map.
type MapView struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Zoom       int     `json:"zoom"`
	LocateZoom int     `json:"locate_zoom"`
}

// DefaultMapView centers the archipelago.
var DefaultMapView = MapView{
	Latitude:   12.8797,
	Longitude:  121.774,
	Zoom:       6,
	LocateZoom: 12,
}
