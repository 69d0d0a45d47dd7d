package extract

import (
	"context"
	"regexp"
	"strconv"

	"github.com/stayharvest/stayharvest/browser"
)

// Free-text patterns over the rendered page body. First match wins; there is
// no cross-validation between the three facts.
var (
	guestsRe   = regexp.MustCompile(`(?i)(\d+)\s+guests?`)
	bedroomsRe = regexp.MustCompile(`(?i)(\d+)\s+bedrooms?`)
	bathsRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s+baths?`)
)

// PropertyFacts extracts guest, bedroom and bathroom counts from the page's
// visible text. Missing facts stay zero.
func PropertyFacts(ctx context.Context, pg browser.Page) (maxGuests, bedrooms int, bathrooms float64) {
	body := evalString(ctx, pg, `() => document.body.innerText`)
	return ParsePropertyFacts(body)
}

// ParsePropertyFacts applies the fact regexes to free text.
func ParsePropertyFacts(text string) (maxGuests, bedrooms int, bathrooms float64) {
	if m := firstSubmatch(guestsRe, text); m != "" {
		maxGuests, _ = strconv.Atoi(m)
	}
	if m := firstSubmatch(bedroomsRe, text); m != "" {
		bedrooms, _ = strconv.Atoi(m)
	}
	if m := firstSubmatch(bathsRe, text); m != "" {
		bathrooms, _ = strconv.ParseFloat(m, 64)
	}
	return maxGuests, bedrooms, bathrooms
}

// Badges extracts the guest-favorite and superhost flags from the listing
// page. Both rely on literal badge text, the most drift-resistant signal the
// page offers.
func Badges(ctx context.Context, pg browser.Page) (isGuestFavorite, isSuperhost bool) {
	isGuestFavorite = evalBool(ctx, pg, `() => {
		if (document.querySelector('[data-testid="pdp-guest-favorite-badge"]')) return true;
		return /guest favorite/i.test(document.body.innerText);
	}`)
	isSuperhost = evalBool(ctx, pg, `() => /\bSuperhost\b/.test(document.body.innerText)`)
	return isGuestFavorite, isSuperhost
}
