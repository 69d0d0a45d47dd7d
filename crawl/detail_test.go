package crawl

import (
	"context"
	"testing"
	"time"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/extract"
	"github.com/stayharvest/stayharvest/models"
)

// stubPage satisfies browser.Page without doing anything. The stopped-crawl
// tests never reach the page.
type stubPage struct{}

func (stubPage) Navigate(ctx context.Context, url string) error { return nil }
func (stubPage) WaitLoadState(ctx context.Context, cond browser.WaitCondition, timeout time.Duration) error {
	return nil
}
func (stubPage) Eval(ctx context.Context, js string, out any) error { return nil }
func (stubPage) Click(ctx context.Context, selector string) error   { return nil }
func (stubPage) PressKey(ctx context.Context, key string) error     { return nil }
func (stubPage) Scroll(ctx context.Context, deltaY float64) error   { return nil }
func (stubPage) WaitVisible(ctx context.Context, s string, d time.Duration) error {
	return nil
}
func (stubPage) URL(ctx context.Context) (string, error)  { return "", nil }
func (stubPage) HTML(ctx context.Context) (string, error) { return "", nil }

func TestDetailCrawler_StoppedBeforeAttemptCarriesError(t *testing.T) {
	d := NewDetailCrawler(config.CrawlConfig{RequestTimeout: time.Minute}, nil, nil)
	d.Stop()

	summary := models.ListingSummary{ListingID: "12345", ListingURL: "https://example.com/rooms/12345"}
	rec := d.scrapeOne(context.Background(), stubPage{}, summary, extract.DetailOptions{})

	if rec.ListingID != "12345" {
		t.Fatalf("ListingID = %q", rec.ListingID)
	}
	if rec.Error == "" {
		t.Error("a record skipped by a stopped crawl must explain itself")
	}
}

func TestDetailCrawler_CanceledContextCarriesError(t *testing.T) {
	d := NewDetailCrawler(config.CrawlConfig{RequestTimeout: time.Minute}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := d.scrapeOne(ctx, stubPage{}, models.ListingSummary{ListingID: "67890"}, extract.DetailOptions{})
	if rec.Error == "" {
		t.Error("a record skipped by cancellation must explain itself")
	}
}
