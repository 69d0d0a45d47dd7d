// Package crawl drives whole scrape jobs: the sequential search walk, the
// concurrent detail fan-out and the single-listing path. One browser session
// is launched per job and torn down with it.
package crawl

import (
	"context"
	"log/slog"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/extract"
	"github.com/stayharvest/stayharvest/models"
)

// Runner executes scrape jobs against a session manager.
type Runner struct {
	cfg     config.CrawlConfig
	navCfg  config.NavConfig
	manager *browser.Manager
}

// NewRunner wires a job runner.
func NewRunner(cfg config.CrawlConfig, navCfg config.NavConfig, manager *browser.Manager) *Runner {
	return &Runner{cfg: cfg, navCfg: navCfg, manager: manager}
}

// Search runs the search crawler only.
func (r *Runner) Search(ctx context.Context, req models.SearchRequest) ([]models.ListingSummary, error) {
	session, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	tab, err := session.NewTab(ctx)
	if err != nil {
		return nil, err
	}
	defer tab.Close()

	delay := browser.NewDelayPolicy(req.MinDelayMs, req.MaxDelayMs)
	col := NewCollector(req.MaxListings)
	crawler := NewSearchCrawler(r.cfg, browser.NewNavigator(r.navCfg), &delay)
	if err := crawler.Run(ctx, tab, req.Location, col); err != nil {
		// A failed walk with partial results is still a result.
		if col.Len() == 0 {
			return nil, err
		}
		slog.Warn("search walk ended early", "collected", col.Len(), "error", err)
	}
	return col.Listings(), nil
}

// Scrape runs the search crawler and then the detail fan-out over every
// discovered listing.
func (r *Runner) Scrape(ctx context.Context, req models.ScrapeJobRequest) ([]models.ListingSummary, []models.DetailedListing, error) {
	session, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer session.Close()

	nav := browser.NewNavigator(r.navCfg)
	delay := browser.NewDelayPolicy(req.MinDelayMs, req.MaxDelayMs)

	tab, err := session.NewTab(ctx)
	if err != nil {
		return nil, nil, err
	}
	col := NewCollector(req.MaxListings)
	searchErr := NewSearchCrawler(r.cfg, nav, &delay).Run(ctx, tab, req.Location, col)
	tab.Close()

	summaries := col.Listings()
	if len(summaries) == 0 {
		if searchErr != nil {
			return nil, nil, searchErr
		}
		return nil, nil, models.NewScrapeError(models.ErrCodeExtraction, "search returned no listings", nil)
	}
	if searchErr != nil {
		slog.Warn("search walk ended early, scraping partial set",
			"collected", len(summaries), "error", searchErr)
	}

	details := NewDetailCrawler(r.cfg, nav, &delay).Run(ctx, session, summaries, extract.DetailOptions{
		BaseURL: r.cfg.BaseURL,
		Quick:   req.Quick,
	})
	return summaries, details, nil
}

// Listing extracts a single listing synchronously.
func (r *Runner) Listing(ctx context.Context, req models.ListingRequest) (*models.DetailedListing, error) {
	session, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	tab, err := session.NewTab(ctx)
	if err != nil {
		return nil, err
	}
	defer tab.Close()

	reqCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	return extract.Detail(reqCtx, tab, browser.NewNavigator(r.navCfg), req.ListingID, extract.DetailOptions{
		BaseURL: r.cfg.BaseURL,
		Quick:   req.Quick,
	})
}
