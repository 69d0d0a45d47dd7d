// Package extract implements the per-field extraction heuristics. Every
// extractor is independently callable, takes an already-navigated page, and
// degrades to its zero value on failure instead of propagating errors: the
// target's markup is unversioned and drifts, so each field is best-effort by
// design.
package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stayharvest/stayharvest/browser"
)

// evalString runs js and returns its trimmed string result, or "" on any
// failure. The workhorse of the fallback chains.
func evalString(ctx context.Context, pg browser.Page, js string) string {
	var s string
	if err := pg.Eval(ctx, js, &s); err != nil {
		slog.Debug("eval failed", "error", err)
		return ""
	}
	return strings.TrimSpace(s)
}

// evalStrings runs js expecting an array of strings, nil on failure.
func evalStrings(ctx context.Context, pg browser.Page, js string) []string {
	var out []string
	if err := pg.Eval(ctx, js, &out); err != nil {
		slog.Debug("eval failed", "error", err)
		return nil
	}
	return out
}

// evalBool runs js expecting a boolean, false on failure.
func evalBool(ctx context.Context, pg browser.Page, js string) bool {
	var b bool
	if err := pg.Eval(ctx, js, &b); err != nil {
		slog.Debug("eval failed", "error", err)
		return false
	}
	return b
}

// ListingURL builds the canonical listing page URL.
func ListingURL(baseURL, listingID string) string {
	return strings.TrimRight(baseURL, "/") + "/rooms/" + listingID
}

// PhotoTourURL is the dedicated scrollable photo-tour view of a listing.
func PhotoTourURL(baseURL, listingID string) string {
	return ListingURL(baseURL, listingID) + "?modal=PHOTO_TOUR_SCROLLABLE"
}

// AmenitiesURL is the amenities modal view of a listing.
func AmenitiesURL(baseURL, listingID string) string {
	return ListingURL(baseURL, listingID) + "?modal=AMENITIES"
}

// HouseRulesURL is the house-rules modal view of a listing.
func HouseRulesURL(baseURL, listingID string) string {
	return ListingURL(baseURL, listingID) + "?modal=HOUSE_RULES"
}

// HostProfileURLs returns the known host-profile URL patterns in trial order.
func HostProfileURLs(baseURL, hostID string) []string {
	base := strings.TrimRight(baseURL, "/")
	return []string{
		base + "/users/show/" + hostID,
		base + "/users/" + hostID,
	}
}
