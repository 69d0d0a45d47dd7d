package extract

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

// calendarCellsJS counts selectable day cells in the availability calendar.
const calendarCellsJS = `() => {
	const cells = document.querySelectorAll(
		'[data-testid^="calendar-day-"]:not([data-is-day-blocked="true"]), ' +
		'td[role="button"][aria-disabled="false"]');
	return cells.length;
}`

// stayTotalRe matches a money amount co-occurring with a 3-night phrase, in
// either order.
var stayTotalRe = regexp.MustCompile(
	`(?i)(?:([€$£¥₹])\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)[^\n]{0,40}\b(?:for\s+)?3\s+nights?\b` +
		`|\b(?:for\s+)?3\s+nights?\b[^\n]{0,40}([€$£¥₹])\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?))`)

// Pricing derives per-night price by selecting a 3-night date pair in the
// availability calendar and reading the quoted total. When the calendar path
// fails it falls back to whatever per-night price the booking sidebar shows.
func Pricing(ctx context.Context, pg browser.Page) models.PricingInfo {
	if info, ok := calendarPricing(ctx, pg); ok {
		return info
	}
	return sidebarPricing(ctx, pg)
}

func calendarPricing(ctx context.Context, pg browser.Page) (models.PricingInfo, bool) {
	var cellCount int
	if err := pg.Eval(ctx, calendarCellsJS, &cellCount); err != nil {
		slog.Debug("pricing: calendar probe failed", "error", err)
		return models.PricingInfo{}, false
	}
	// Need the first and fourth selectable days for a 3-night stay.
	if cellCount < 4 {
		slog.Debug("pricing: too few selectable calendar cells", "cells", cellCount)
		return models.PricingInfo{}, false
	}

	for _, idx := range []int{0, 3} {
		if !clickCalendarCell(ctx, pg, idx) {
			return models.PricingInfo{}, false
		}
		if err := browser.Sleep(ctx, 800*time.Millisecond); err != nil {
			return models.PricingInfo{}, false
		}
	}
	if err := browser.Sleep(ctx, 1500*time.Millisecond); err != nil {
		return models.PricingInfo{}, false
	}

	body := evalString(ctx, pg, `() => document.body.innerText`)
	total, currency, ok := ParseStayTotal(body)
	if !ok {
		slog.Debug("pricing: no 3-night total after date selection")
		return models.PricingInfo{}, false
	}
	return models.PricingInfo{
		PricePerNight:   PerNightFromTotal(total),
		Currency:        currency,
		TotalFor3Nights: total,
	}, true
}

// clickCalendarCell clicks the nth selectable day cell with an in-page click,
// scrolling it into view first. rod's element click needs the node in the
// viewport; the in-page path does not.
func clickCalendarCell(ctx context.Context, pg browser.Page, idx int) bool {
	clicked := evalBool(ctx, pg, fmt.Sprintf(`() => {
		const cells = document.querySelectorAll(
			'[data-testid^="calendar-day-"]:not([data-is-day-blocked="true"]), ' +
			'td[role="button"][aria-disabled="false"]');
		const cell = cells[%d];
		if (!cell) return false;
		cell.scrollIntoView({block: 'center'});
		cell.click();
		return true;
	}`, idx))
	if !clicked {
		slog.Debug("pricing: calendar cell click failed", "index", idx)
	}
	return clicked
}

// sidebarPricing reads the booking sidebar's advertised nightly price.
func sidebarPricing(ctx context.Context, pg browser.Page) models.PricingInfo {
	text := evalString(ctx, pg, `() => {
		const side = document.querySelector('[data-section-id="BOOK_IT_SIDEBAR"], [data-testid="book-it-default"]');
		if (side) return side.innerText;
		const n = [...document.querySelectorAll('span, div')]
			.find(el => /night/i.test(el.innerText) && /[€$£¥₹]/.test(el.innerText) && el.innerText.length < 80);
		return n ? n.innerText : '';
	}`)
	amount, currency := ParseMoney(text)
	if amount == 0 {
		return models.PricingInfo{}
	}
	return models.PricingInfo{PricePerNight: amount, Currency: currency}
}

// ParseStayTotal finds the total quoted for a 3-night stay in free text.
func ParseStayTotal(text string) (total float64, currency string, ok bool) {
	m := stayTotalRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	sym, num := m[1], m[2]
	if sym == "" {
		sym, num = m[3], m[4]
	}
	amount, cur := ParseMoney(sym + num)
	if amount == 0 {
		return 0, "", false
	}
	return amount, cur, true
}

// PerNightFromTotal converts a 3-night total to a rounded per-night price.
func PerNightFromTotal(total float64) float64 {
	return math.Round(total / 3)
}
