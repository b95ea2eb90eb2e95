// Package format renders a resolved coordinate pair into the textual
// representations the tool supports. Both the one-shot and the interactive
// mode render through this package, so the two never disagree on shape.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/wiglebt/internal/models"
)

// Format identifies one textual rendering of a coordinate pair.
type Format string

const (
	// FullCoordinate renders "(lat, lon)".
	FullCoordinate Format = "full-coordinate"
	// Latitude renders the latitude alone.
	Latitude Format = "latitude"
	// Longitude renders the longitude alone.
	Longitude Format = "longitude"
	// GoogleMaps renders a Google Maps place URL.
	GoogleMaps Format = "google-maps"
)

// All lists every supported format, in the order shown to users.
var All = []Format{FullCoordinate, Latitude, Longitude, GoogleMaps}

// ParseList splits a comma-separated format list, trims surrounding
// whitespace per entry and validates every tag against the supported set.
// Order is preserved and duplicates are allowed. The first invalid tag fails
// the whole list.
func ParseList(list string) ([]Format, error) {
	parts := strings.Split(list, ",")

	formats := make([]Format, 0, len(parts))
	for _, part := range parts {
		tag := Format(strings.TrimSpace(part))
		if !tag.valid() {
			return nil, fmt.Errorf("invalid output format %q. Valid formats: %s", string(tag), validList())
		}
		formats = append(formats, tag)
	}

	return formats, nil
}

// Render produces one output line per requested format, in request order.
func Render(coords models.Coordinates, formats []Format) []string {
	lines := make([]string, 0, len(formats))
	for _, tag := range formats {
		lines = append(lines, tag.Render(coords))
	}

	return lines
}

// Render returns the textual rendering of coords for a single format.
func (f Format) Render(coords models.Coordinates) string {
	lat := formatFloat(coords.Latitude)
	lon := formatFloat(coords.Longitude)

	switch f {
	case FullCoordinate:
		return "(" + lat + ", " + lon + ")"
	case Latitude:
		return lat
	case Longitude:
		return lon
	case GoogleMaps:
		return "https://www.google.com/maps/place/" + lat + "," + lon
	default:
		return ""
	}
}

func (f Format) valid() bool {
	switch f {
	case FullCoordinate, Latitude, Longitude, GoogleMaps:
		return true
	default:
		return false
	}
}

func validList() string {
	names := make([]string, len(All))
	for i, tag := range All {
		names[i] = string(tag)
	}

	return strings.Join(names, ", ")
}

// formatFloat renders a coordinate component in its shortest decimal form,
// so 37.1 stays "37.1" and never grows trailing zeros.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
