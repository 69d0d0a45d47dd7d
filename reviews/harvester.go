// Package reviews harvests the review modal across its sort orders. All sort
// categories share one modal instance, so harvesting is strictly sequential:
// select a sort, scroll, collect, move on.
package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

// sortLabels maps sort keys to the visible option labels in the sort menu.
var sortLabels = map[models.SortOrder]string{
	models.SortMostRelevant: "Most relevant",
	models.SortMostRecent:   "Most recent",
	models.SortHighestRated: "Highest rated",
	models.SortLowestRated:  "Lowest rated",
}

// RetryPolicy governs the empty-harvest retry: when the page reports reviews
// but a pass extracts none, the pass is repeated after Backoff, at most
// MaxRetries times.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// DefaultRetryPolicy retries a suspicious empty harvest once.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 1, Backoff: 2 * time.Second}

// Options tunes a harvest run.
type Options struct {
	// ScrollPasses is the fixed number of modal scroll iterations per sort
	// order. The modal lazy-loads, so more passes surface more reviews.
	ScrollPasses int
	// ReportedCount is the review count the listing page advertises. It arms
	// the empty-harvest retry; zero disables it.
	ReportedCount int
	Retry         RetryPolicy
}

func (o *Options) defaults() {
	if o.ScrollPasses <= 0 {
		o.ScrollPasses = 6
	}
	if o.Retry == (RetryPolicy{}) {
		o.Retry = DefaultRetryPolicy
	}
}

// Harvest opens the reviews modal and collects reviews under every sort
// order. Each category is deduplicated by review id independently; the same
// review legitimately appears under several categories. A sort option the
// menu does not offer is skipped, not an error.
func Harvest(ctx context.Context, pg browser.Page, opts Options) (models.ReviewsByCategory, error) {
	opts.defaults()

	if err := openModal(ctx, pg); err != nil {
		return nil, err
	}

	out := make(models.ReviewsByCategory, len(models.SortOrders))
	for _, order := range models.SortOrders {
		if !selectSort(ctx, pg, order) {
			slog.Debug("review sort option missing, skipping", "sort", order)
			continue
		}

		collected := harvestPass(ctx, pg, opts.ScrollPasses)
		for attempt := 0; attempt < opts.Retry.MaxRetries && len(collected) == 0 && opts.ReportedCount > 0; attempt++ {
			slog.Debug("empty harvest with reviews reported, retrying",
				"sort", order, "reported", opts.ReportedCount)
			if err := browser.Sleep(ctx, opts.Retry.Backoff); err != nil {
				return out, err
			}
			collected = harvestPass(ctx, pg, opts.ScrollPasses)
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out[order] = collected
		slog.Debug("review category harvested", "sort", order, "count", len(collected))
	}
	return out, nil
}

// openModal clicks the "show all reviews" control and waits for the modal.
func openModal(ctx context.Context, pg browser.Page) error {
	var opened bool
	err := pg.Eval(ctx, `() => {
		const btn = [...document.querySelectorAll('button, a')]
			.find(b => /show all \d+ reviews?/i.test(b.innerText));
		if (!btn) return false;
		btn.scrollIntoView({block: 'center'});
		btn.click();
		return true;
	}`, &opened)
	if err != nil {
		return fmt.Errorf("opening reviews modal: %w", err)
	}
	if !opened {
		return fmt.Errorf("no reviews control on page")
	}
	if err := pg.WaitVisible(ctx, `[data-testid="modal-container"]`, 15*time.Second); err != nil {
		return fmt.Errorf("reviews modal never appeared: %w", err)
	}
	return browser.Sleep(ctx, time.Second)
}

// selectSort opens the sort menu and picks the option matching the order's
// label. A missing option closes the menu and reports false.
func selectSort(ctx context.Context, pg browser.Page, order models.SortOrder) bool {
	label := sortLabels[order]

	var opened bool
	err := pg.Eval(ctx, `() => {
		const modal = document.querySelector('[data-testid="modal-container"]');
		if (!modal) return false;
		const trigger = modal.querySelector('[data-testid="reviews-sort-select"], button[aria-haspopup="listbox"], button[aria-haspopup="menu"]');
		if (!trigger) return false;
		trigger.click();
		return true;
	}`, &opened)
	if err != nil || !opened {
		// No menu at all: only the default order is harvestable.
		return order == models.SortMostRelevant
	}

	if err := browser.Sleep(ctx, 500*time.Millisecond); err != nil {
		return false
	}

	var picked bool
	err = pg.Eval(ctx, fmt.Sprintf(`() => {
		const opts = [...document.querySelectorAll('[role="option"], [role="menuitem"], option')];
		const hit = opts.find(o => o.innerText.trim().toLowerCase().startsWith(%q));
		if (!hit) {
			document.dispatchEvent(new KeyboardEvent('keydown', {key: 'Escape'}));
			return false;
		}
		hit.click();
		return true;
	}`, strings.ToLower(label)), &picked)
	if err != nil || !picked {
		return false
	}
	return browser.Sleep(ctx, time.Second) == nil
}

// harvestPass scrolls the modal a fixed number of times and collects every
// review card, deduplicated by id.
func harvestPass(ctx context.Context, pg browser.Page, scrollPasses int) []models.Review {
	for i := 0; i < scrollPasses; i++ {
		var scrolled bool
		err := pg.Eval(ctx, `() => {
			const modal = document.querySelector('[data-testid="modal-container"]');
			if (!modal) return false;
			const pane = [...modal.querySelectorAll('div')]
				.find(d => d.scrollHeight > d.clientHeight + 50) || modal;
			pane.scrollTop = pane.scrollHeight;
			return true;
		}`, &scrolled)
		if err != nil || !scrolled {
			break
		}
		if err := browser.Sleep(ctx, 600*time.Millisecond); err != nil {
			return nil
		}
	}

	var raw []rawReview
	err := pg.Eval(ctx, `() => {
		const modal = document.querySelector('[data-testid="modal-container"]');
		if (!modal) return [];
		const out = [];
		for (const card of modal.querySelectorAll('[data-review-id]')) {
			const id = card.getAttribute('data-review-id');
			const name = card.querySelector('h2, h3, [data-testid="review-author"]');
			const stars = card.querySelector('[aria-label*="star" i]');
			const body = card.querySelector('span[data-testid="review-text"], [data-review-text]');
			const lines = card.innerText.split('\n').map(l => l.trim()).filter(Boolean);
			out.push({
				id: id || '',
				name: name ? name.innerText.trim() : (lines[0] || ''),
				text: body ? body.innerText.trim() : lines.slice(2).join(' '),
				starLabel: stars ? (stars.getAttribute('aria-label') || '') : '',
				meta: lines[1] || ''
			});
		}
		return out;
	}`, &raw)
	if err != nil {
		slog.Debug("review collection failed", "error", err)
		return nil
	}

	reviews := make([]models.Review, 0, len(raw))
	for _, r := range raw {
		reviews = append(reviews, r.toReview())
	}
	return dedupe(reviews)
}
