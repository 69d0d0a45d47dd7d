package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

// locationHeadingJS pulls the heading text of the map/location section, which
// carries the "City, State, Country" line.
const locationHeadingJS = `() => {
	const sec = document.querySelector('[data-section-id="LOCATION_DEFAULT"]');
	if (sec) {
		const h = sec.querySelector('h1, h2, h3');
		if (h && h.innerText.trim()) return h.innerText.trim();
	}
	const heading = [...document.querySelectorAll('h1, h2, h3')]
		.find(h => /where you.ll be/i.test(h.innerText));
	if (heading && heading.nextElementSibling) {
		const t = heading.nextElementSibling.innerText.trim();
		if (t) return t.split('\n')[0];
	}
	return '';
}`

// locationSpansJS harvests the free-text address from address-shaped spans
// inside the location section. An independent channel from the heading: some
// variants render a fuller street-level line here.
const locationSpansJS = `() => {
	const sec = document.querySelector('[data-section-id="LOCATION_DEFAULT"]');
	if (!sec) return '';
	for (const s of sec.querySelectorAll('span, div')) {
		const t = s.innerText ? s.innerText.trim() : '';
		if (t && t.includes(',') && t.length < 120 && !t.includes('\n')) return t;
	}
	return '';
}`

// mapCenterRe matches a static-map center parameter with either a literal or
// percent-encoded comma between the coordinates.
var mapCenterRe = regexp.MustCompile(`center=(-?\d+(?:\.\d+)?)(?:,|%2C)(-?\d+(?:\.\d+)?)`)

// Location extracts the listing's city/state/country line and map
// coordinates. All fields are best-effort; a partially filled LocationInfo is
// normal.
func Location(ctx context.Context, pg browser.Page) models.LocationInfo {
	line := evalString(ctx, pg, locationHeadingJS)
	address := evalString(ctx, pg, locationSpansJS)
	mapURL := evalString(ctx, pg, `() => {
		const img = document.querySelector('img[src*="maps.googleapis.com"], img[src*="staticmap"]');
		return img ? img.src : '';
	}`)
	return buildLocation(line, address, mapURL)
}

// buildLocation merges the three channels: the heading line is split into
// city/state/country, the span text becomes the address, and the static-map
// URL yields coordinates. The span address backs the heading up when the
// heading is missing or is just the section title.
func buildLocation(line, address, mapURL string) models.LocationInfo {
	if line == "" || strings.EqualFold(line, "where you'll be") {
		line = address
	}
	info := ParseLocationLine(line)
	if address != "" {
		info.Address = CleanSpace(address)
	}
	if coords, ok := ParseMapCenter(mapURL); ok {
		info.Coordinates = coords
	}
	return info
}

// ParseLocationLine splits a "City, State, Country" line. Two segments mean
// city and country; a single segment is kept as the city.
func ParseLocationLine(line string) models.LocationInfo {
	line = CleanSpace(StripLabelPrefix(line, []string{"Where you'll be", "Where you’ll be"}))
	if line == "" {
		return models.LocationInfo{}
	}
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	info := models.LocationInfo{Address: line}
	switch len(parts) {
	case 1:
		info.City = parts[0]
	case 2:
		info.City, info.Country = parts[0], parts[1]
	default:
		info.City = parts[0]
		info.State = strings.Join(parts[1:len(parts)-1], ", ")
		info.Country = parts[len(parts)-1]
	}
	return info
}

// ParseMapCenter reads latitude/longitude out of a static-map URL's center
// parameter. Handles both literal and percent-encoded comma separators.
func ParseMapCenter(mapURL string) (models.Coordinates, bool) {
	m := mapCenterRe.FindStringSubmatch(mapURL)
	if m == nil {
		return models.Coordinates{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return models.Coordinates{}, false
	}
	return models.Coordinates{Latitude: lat, Longitude: lng}, true
}
