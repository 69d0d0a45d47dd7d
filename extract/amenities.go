package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

const amenityScrollPasses = 8

// Amenities opens the amenities view and collects every entry. The richer
// id-prefixed schema carries a title plus description; when absent, elements
// tagged with an amenity data attribute supply names only. The page is
// restored to its previous URL before returning.
func Amenities(ctx context.Context, pg browser.Page, nav *browser.Navigator, baseURL, listingID string) []models.Amenity {
	returnURL, err := pg.URL(ctx)
	if err != nil {
		returnURL = ListingURL(baseURL, listingID)
	}
	defer func() {
		if _, err := nav.Navigate(ctx, pg, returnURL, browser.NavigateOptions{}); err != nil {
			slog.Warn("amenities: failed to restore page", "url", returnURL, "error", err)
		}
	}()

	if _, err := nav.Navigate(ctx, pg, AmenitiesURL(baseURL, listingID), browser.NavigateOptions{}); err != nil {
		slog.Debug("amenities: navigation failed", "listing", listingID, "error", err)
		return nil
	}

	// Lazy rows render on scroll.
	for i := 0; i < amenityScrollPasses; i++ {
		if err := pg.Scroll(ctx, 600); err != nil {
			break
		}
		if err := browser.Sleep(ctx, 300*time.Millisecond); err != nil {
			return nil
		}
	}

	type rawAmenity struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	var raw []rawAmenity
	err = pg.Eval(ctx, `() => {
		const out = [];
		// Rich schema: row ids prefixed with the amenity group.
		for (const row of document.querySelectorAll('[id^="pdp_v3_"], [data-testid^="amenity-row"]')) {
			const parts = row.innerText.split('\n').map(p => p.trim()).filter(Boolean);
			if (parts.length === 0) continue;
			out.push({title: parts[0], description: parts.slice(1).join(' ')});
		}
		if (out.length > 0) return out;
		// Fallback: anything tagged as an amenity.
		for (const el of document.querySelectorAll('[data-amenity-id], [data-testid*="amenity"]')) {
			const t = el.innerText ? el.innerText.trim().split('\n')[0] : '';
			if (t) out.push({title: t, description: ''});
		}
		return out;
	}`, &raw)
	if err != nil {
		slog.Debug("amenities: collection failed", "error", err)
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	var out []models.Amenity
	for _, r := range raw {
		name := CleanSpace(r.Title)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, models.Amenity{Name: name, Description: CleanSpace(r.Description)})
	}
	return out
}
