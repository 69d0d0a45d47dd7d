package crawl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/extract"
	"github.com/stayharvest/stayharvest/models"
)

// DetailCrawler fans detail extraction out over a bounded worker pool. A
// shared token bucket caps the request rate across workers; each worker owns
// one tab for its lifetime.
type DetailCrawler struct {
	cfg      config.CrawlConfig
	nav      *browser.Navigator
	limiter  *rate.Limiter
	delay    *browser.DelayPolicy
	stop     chan struct{}
	stopOnce sync.Once
}

// NewDetailCrawler wires the fan-out. delay may be nil.
func NewDetailCrawler(cfg config.CrawlConfig, nav *browser.Navigator, delay *browser.DelayPolicy) *DetailCrawler {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}
	return &DetailCrawler{
		cfg:     cfg,
		nav:     nav,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		delay:   delay,
		stop:    make(chan struct{}),
	}
}

// Stop aborts the crawl: no further listings are scheduled, in-flight
// requests finish. Safe to call more than once and from any goroutine.
func (d *DetailCrawler) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

func (d *DetailCrawler) stopped(ctx context.Context) bool {
	select {
	case <-d.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Run extracts details for every summary. Records are returned in completion
// order. A listing whose navigation never succeeds yields an error-only
// record instead of dropping out of the result set; listings never scheduled
// because of Stop or cancellation yield error-only records too.
func (d *DetailCrawler) Run(ctx context.Context, session *browser.Session, summaries []models.ListingSummary, opts extract.DetailOptions) []models.DetailedListing {
	var mu sync.Mutex
	results := make([]models.DetailedListing, 0, len(summaries))
	add := func(r models.DetailedListing) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	jobs := make(chan models.ListingSummary)

	workers := d.cfg.DetailConcurrency
	if workers <= 0 {
		workers = 1
	}
	if workers > len(summaries) {
		workers = len(summaries)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tab, err := session.NewTab(ctx)
			if err != nil {
				slog.Error("detail worker could not open tab", "error", err)
				for summary := range jobs {
					add(errorRecord(summary, err))
				}
				return
			}
			defer tab.Close()

			for summary := range jobs {
				add(d.scrapeOne(ctx, tab, summary, opts))
				if d.delay != nil {
					if err := d.delay.Sleep(ctx); err != nil {
						return
					}
				}
			}
		}()
	}

	scheduled := 0
dispatch:
	for _, s := range summaries {
		select {
		case jobs <- s:
			scheduled++
		case <-d.stop:
			break dispatch
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if scheduled < len(summaries) {
		reason := ctx.Err()
		if reason == nil {
			reason = context.Canceled
		}
		slog.Warn("detail crawl stopped early",
			"scheduled", scheduled, "total", len(summaries))
		for _, s := range summaries[scheduled:] {
			add(errorRecord(s, reason))
		}
	}
	return results
}

// scrapeOne runs the pipeline for a single listing with retries and a
// per-request deadline.
func (d *DetailCrawler) scrapeOne(ctx context.Context, pg browser.Page, summary models.ListingSummary, opts extract.DetailOptions) models.DetailedListing {
	var lastErr error
	for attempt := 0; attempt <= d.cfg.MaxRetries; attempt++ {
		if d.stopped(ctx) {
			break
		}
		if attempt > 0 {
			slog.Warn("retrying detail extraction",
				"listing", summary.ListingID, "attempt", attempt+1, "error", lastErr)
			if err := browser.Sleep(ctx, 5*time.Second); err != nil {
				return errorRecord(summary, err)
			}
		}
		if err := d.limiter.Wait(ctx); err != nil {
			return errorRecord(summary, err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
		detail, err := extract.Detail(reqCtx, pg, d.nav, summary.ListingID, opts)
		cancel()
		if err == nil {
			mergeSummary(detail, summary)
			return *detail
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = models.NewScrapeError(models.ErrCodeTimeout, "crawl stopped before extraction", ctx.Err())
	}
	slog.Error("detail extraction failed", "listing", summary.ListingID, "error", lastErr)
	return errorRecord(summary, lastErr)
}

// errorRecord is the navigation-failure shape: identity fields plus the
// error, nothing else.
func errorRecord(summary models.ListingSummary, err error) models.DetailedListing {
	d := models.DetailedListing{}
	d.ListingID = summary.ListingID
	d.ListingURL = summary.ListingURL
	d.Location = summary.Location
	if err != nil {
		d.Error = err.Error()
	}
	return d
}

// mergeSummary backfills detail fields the pipeline could not resolve from
// what the search card already knew.
func mergeSummary(d *models.DetailedListing, s models.ListingSummary) {
	d.Location = s.Location
	if d.Title == "" {
		d.Title = s.Title
	}
	if d.Bedrooms == 0 {
		d.Bedrooms = s.Bedrooms
	}
	if d.PricePerNight == 0 {
		d.PricePerNight = s.PricePerNight
		d.TotalPrice = s.TotalPrice
		d.StayLengthNights = s.StayLengthNights
	}
	if d.RawPriceText == "" {
		d.RawPriceText = s.RawPriceText
	}
	if d.NumberOfReviews == 0 {
		d.NumberOfReviews = s.NumberOfReviews
	}
	if d.OverallReviewScore == 0 {
		d.OverallReviewScore = s.OverallReviewScore
	}
}
