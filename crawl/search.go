package crawl

import (
	"context"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/extract"
	"github.com/stayharvest/stayharvest/models"
)

var (
	roomIDRe     = regexp.MustCompile(`/rooms/(\d+)`)
	cardRatingRe = regexp.MustCompile(`([0-5]\.[0-9]{1,2})\s*\((\d+)`)
	nightsRe     = regexp.MustCompile(`(?i)(?:for\s+)?(\d+)\s+nights?`)
	bedroomsRe   = regexp.MustCompile(`(?i)(\d+)\s+bedrooms?`)
)

// listingAnchorSel marks a loaded result page.
const listingAnchorSel = `a[href*="/rooms/"]`

// rawCard is the in-page shape of one search result card.
type rawCard struct {
	Href       string `json:"href"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	PriceText  string `json:"priceText"`
	RatingText string `json:"ratingText"`
}

// SearchCrawler walks search result pages sequentially, feeding a Collector.
type SearchCrawler struct {
	cfg   config.CrawlConfig
	nav   *browser.Navigator
	delay *browser.DelayPolicy
}

// NewSearchCrawler wires the crawler. delay may be nil for no inter-page
// pause.
func NewSearchCrawler(cfg config.CrawlConfig, nav *browser.Navigator, delay *browser.DelayPolicy) *SearchCrawler {
	return &SearchCrawler{cfg: cfg, nav: nav, delay: delay}
}

// SearchURL builds the first results page for a location query.
func SearchURL(baseURL, location string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + url.PathEscape(location) + "/homes"
}

// Run crawls result pages until the collector is full, the page budget is
// spent, or no next page exists. Pages load sequentially on one tab; the
// detail fan-out is the concurrent part of a job, not the search walk.
func (s *SearchCrawler) Run(ctx context.Context, pg browser.Page, location string, col *Collector) error {
	pageURL := SearchURL(s.cfg.BaseURL, location)

	for pageNum := 1; pageNum <= s.cfg.SearchMaxPages; pageNum++ {
		if col.Full() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.loadResultsPage(ctx, pg, pageURL); err != nil {
			return err
		}
		s.scrollResults(ctx, pg)

		kept := s.collectCards(ctx, pg, location, col)
		slog.Info("search page crawled", "page", pageNum, "new_listings", kept, "total", col.Len())

		if col.Full() {
			return nil
		}

		next, ok := s.nextPageURL(ctx, pg, pageURL)
		if !ok {
			slog.Debug("no next page", "page", pageNum)
			return nil
		}
		pageURL = next

		if s.delay != nil {
			if err := s.delay.Sleep(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadResultsPage navigates with retries. The listing anchor is the page
// marker; a page without it after every retry is a failure.
func (s *SearchCrawler) loadResultsPage(ctx context.Context, pg browser.Page, pageURL string) error {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := browser.Sleep(ctx, 3*time.Second); err != nil {
				return err
			}
		}
		if _, err := s.nav.Navigate(ctx, pg, pageURL, browser.NavigateOptions{Marker: listingAnchorSel}); err != nil {
			lastErr = err
			continue
		}
		if err := pg.WaitVisible(ctx, listingAnchorSel, 10*time.Second); err != nil {
			lastErr = err
			slog.Warn("results page has no listing anchors", "url", pageURL, "attempt", attempt+1)
			continue
		}
		return nil
	}
	return models.NewScrapeError(models.ErrCodeNavigation, "search results never loaded: "+pageURL, lastErr)
}

// scrollResults scrolls in passes then jumps to the bottom so the lazy card
// grid fully renders.
func (s *SearchCrawler) scrollResults(ctx context.Context, pg browser.Page) {
	for i := 0; i < s.cfg.SearchScrollPasses; i++ {
		if err := pg.Scroll(ctx, 800); err != nil {
			return
		}
		if err := browser.Sleep(ctx, 500*time.Millisecond); err != nil {
			return
		}
	}
	var done bool
	_ = pg.Eval(ctx, `() => { window.scrollTo(0, document.body.scrollHeight); return true; }`, &done)
	_ = browser.Sleep(ctx, time.Second)
}

// collectCards extracts all result cards on the current page into the
// collector. Returns how many were new.
func (s *SearchCrawler) collectCards(ctx context.Context, pg browser.Page, location string, col *Collector) int {
	var cards []rawCard
	err := pg.Eval(ctx, `() => {
		const out = [];
		const seen = new Set();
		const cardOf = (a) => a.closest('[data-testid="card-container"], [itemprop="itemListElement"]') || a;
		for (const a of document.querySelectorAll('a[href*="/rooms/"]')) {
			const card = cardOf(a);
			if (seen.has(card)) continue;
			seen.add(card);
			const title = card.querySelector('[data-testid="listing-card-title"], [id^="title_"]');
			const subtitle = card.querySelector('[data-testid="listing-card-subtitle"]');
			const price = card.querySelector('[data-testid="price-availability-row"], span[aria-hidden="true"]');
			const rating = [...card.querySelectorAll('span')]
				.map(sp => sp.innerText ? sp.innerText.trim() : '')
				.find(t => /^[0-5]\.[0-9]/.test(t));
			out.push({
				href: a.href,
				title: title ? title.innerText.trim() : '',
				subtitle: subtitle ? subtitle.innerText.trim() : '',
				priceText: price ? price.innerText.trim() : '',
				ratingText: rating || ''
			});
		}
		return out;
	}`, &cards)
	if err != nil {
		slog.Warn("card collection failed", "error", err)
		return 0
	}

	kept := 0
	for _, c := range cards {
		summary, ok := ParseSearchCard(c, location)
		if !ok {
			continue
		}
		if col.Add(summary) {
			kept++
		}
		if col.Full() {
			break
		}
	}
	return kept
}

// ParseSearchCard converts a raw card to a ListingSummary. Cards without a
// numeric listing id in their link are dropped.
func ParseSearchCard(c rawCard, location string) (models.ListingSummary, bool) {
	m := roomIDRe.FindStringSubmatch(c.Href)
	if m == nil {
		return models.ListingSummary{}, false
	}

	s := models.ListingSummary{
		ListingID:    m[1],
		ListingURL:   strings.SplitN(c.Href, "?", 2)[0],
		Location:     location,
		Title:        extract.CleanSpace(c.Title),
		RawPriceText: extract.CleanSpace(c.PriceText),
	}
	if s.Title == "" {
		s.Title = extract.CleanSpace(c.Subtitle)
	}

	if b := bedroomsRe.FindStringSubmatch(c.Subtitle); b != nil {
		s.Bedrooms, _ = strconv.Atoi(b[1])
	}

	if amount, _ := extract.ParseMoney(c.PriceText); amount > 0 {
		if n := nightsRe.FindStringSubmatch(c.PriceText); n != nil {
			s.StayLengthNights, _ = strconv.Atoi(n[1])
			s.TotalPrice = amount
			if s.StayLengthNights > 0 {
				s.PricePerNight = math.Round(amount / float64(s.StayLengthNights))
			}
		} else {
			s.PricePerNight = amount
		}
	}

	if r := cardRatingRe.FindStringSubmatch(c.RatingText); r != nil {
		s.OverallReviewScore, _ = strconv.ParseFloat(r[1], 64)
		s.NumberOfReviews, _ = strconv.Atoi(r[2])
	}
	return s, true
}

// nextPageURL resolves the next results page through a selector chain, the
// last link of which is clicked and the resulting URL read back.
func (s *SearchCrawler) nextPageURL(ctx context.Context, pg browser.Page, current string) (string, bool) {
	href := ""
	_ = pg.Eval(ctx, `() => {
		const direct = document.querySelector('a[aria-label="Next"]');
		if (direct && direct.href) return direct.href;
		const navNext = [...document.querySelectorAll('nav a')].find(a => /^next$/i.test(a.innerText.trim()));
		if (navNext && navNext.href) return navNext.href;
		const tested = document.querySelector('[data-testid="pagination-next"], [data-testid="pagination"] a[rel="next"]');
		if (tested && tested.href) return tested.href;
		return '';
	}`, &href)
	if href != "" && href != current {
		return href, true
	}

	// Last resort: click whatever next-shaped control exists and read the
	// URL the page lands on.
	var clicked bool
	err := pg.Eval(ctx, `() => {
		const btn = document.querySelector('a[aria-label="Next"], button[aria-label="Next"]');
		if (!btn || btn.disabled || btn.getAttribute('aria-disabled') === 'true') return false;
		btn.click();
		return true;
	}`, &clicked)
	if err != nil || !clicked {
		return "", false
	}
	if err := browser.Sleep(ctx, 2*time.Second); err != nil {
		return "", false
	}
	landed, err := pg.URL(ctx)
	if err != nil || landed == "" || landed == current {
		return "", false
	}
	return landed, true
}
