package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

var (
	checkInRe    = regexp.MustCompile(`(?i)check-?in(?: time)?[:\s]+(?:after\s+)?([0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?(?:\s*-\s*[0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?)?)`)
	checkOutRe   = regexp.MustCompile(`(?i)check-?out(?: time)?[:\s]+(?:before\s+)?([0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?)`)
	guestCapRe   = regexp.MustCompile(`(?i)(\d+)\s+guests?\s+maximum`)
	quietHoursRe = regexp.MustCompile(`(?i)quiet hours\s*\n?\s*([0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?\s*-\s*[0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?)`)
)

// HouseRulesInfo opens the house-rules view, expands it when a "show more"
// control exists, and parses the rule text. The page is restored to its
// previous URL before returning.
func HouseRulesInfo(ctx context.Context, pg browser.Page, nav *browser.Navigator, baseURL, listingID string) models.HouseRules {
	returnURL, err := pg.URL(ctx)
	if err != nil {
		returnURL = ListingURL(baseURL, listingID)
	}
	defer func() {
		if _, err := nav.Navigate(ctx, pg, returnURL, browser.NavigateOptions{}); err != nil {
			slog.Warn("house rules: failed to restore page", "url", returnURL, "error", err)
		}
	}()

	if _, err := nav.Navigate(ctx, pg, HouseRulesURL(baseURL, listingID), browser.NavigateOptions{}); err != nil {
		slog.Debug("house rules: navigation failed", "listing", listingID, "error", err)
		return models.HouseRules{}
	}

	expanded := evalBool(ctx, pg, `() => {
		const btn = [...document.querySelectorAll('button')].find(b => /show more/i.test(b.innerText));
		if (!btn) return false;
		btn.click();
		return true;
	}`)
	if expanded {
		if err := browser.Sleep(ctx, time.Second); err != nil {
			return models.HouseRules{}
		}
	}

	text := evalString(ctx, pg, `() => {
		const modal = document.querySelector('[data-testid="modal-container"]');
		if (modal) return modal.innerText;
		const sec = document.querySelector('[data-section-id="POLICIES_DEFAULT"]');
		return sec ? sec.innerText : document.body.innerText;
	}`)
	return ParseHouseRules(text)
}

// ParseHouseRules extracts structured rules from free rule text. Boolean
// rules trigger on their literal phrasing; pets invert the "no pets" line.
func ParseHouseRules(text string) models.HouseRules {
	var hr models.HouseRules
	lower := strings.ToLower(text)

	if m := checkInRe.FindStringSubmatch(text); m != nil {
		hr.CheckIn = CleanSpace(m[1])
	}
	if m := checkOutRe.FindStringSubmatch(text); m != nil {
		hr.CheckOut = CleanSpace(m[1])
	}
	if m := guestCapRe.FindStringSubmatch(text); m != nil {
		hr.MaxGuests, _ = strconv.Atoi(m[1])
	}
	if m := quietHoursRe.FindStringSubmatch(text); m != nil {
		hr.QuietHours = CleanSpace(m[1])
	}

	hr.SelfCheckIn = strings.Contains(lower, "self check-in") || strings.Contains(lower, "self-check-in")
	hr.Pets = strings.Contains(lower, "pets allowed") ||
		(strings.Contains(lower, "pets") && !strings.Contains(lower, "no pets"))
	hr.NoParties = strings.Contains(lower, "no parties")
	hr.NoCommercialPhotography = strings.Contains(lower, "no commercial photography")
	hr.NoSmoking = strings.Contains(lower, "no smoking")

	hr.AdditionalRules = sectionAfterHeading(text, "additional rules")
	hr.BeforeYouLeave = bulletsAfterHeading(text, "before you leave")
	return hr
}

// ruleHeadings are the section headings of the house-rules view. They bound
// sectionAfterHeading so one section never bleeds into the next.
var ruleHeadings = map[string]struct{}{
	"house rules":         {},
	"checking in and out": {},
	"during your stay":    {},
	"before you leave":    {},
	"additional rules":    {},
	"show more":           {},
}

// sectionAfterHeading returns the text between the given heading line and the
// next known heading or blank line.
func sectionAfterHeading(text, heading string) string {
	lines := strings.Split(text, "\n")
	var out []string
	in := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if !in {
			if lower == heading {
				in = true
			}
			continue
		}
		if trimmed == "" {
			break
		}
		if _, isHeading := ruleHeadings[lower]; isHeading {
			break
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// bulletsAfterHeading returns the bullet lines following the given heading.
func bulletsAfterHeading(text, heading string) []string {
	body := sectionAfterHeading(text, heading)
	if body == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-•· "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
