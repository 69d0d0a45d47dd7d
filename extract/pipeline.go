package extract

import (
	"context"
	"log/slog"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
	"github.com/stayharvest/stayharvest/reviews"
)

// DetailOptions tunes a full-detail extraction run.
type DetailOptions struct {
	BaseURL string
	// Quick skips the expensive passes: calendar pricing, the multi-category
	// review harvest and the host-profile page visit.
	Quick bool
	// IncludeCategoryRatings turns on the per-category rating breakdown.
	IncludeCategoryRatings bool
	ReviewScrollPasses     int
}

// Detail runs the full extraction pipeline for one listing on an
// already-acquired page. Navigation failure is the only hard error; every
// extractor after it degrades to its zero value independently.
func Detail(ctx context.Context, pg browser.Page, nav *browser.Navigator, listingID string, opts DetailOptions) (*models.DetailedListing, error) {
	url := ListingURL(opts.BaseURL, listingID)
	if _, err := nav.Navigate(ctx, pg, url, browser.NavigateOptions{}); err != nil {
		return nil, err
	}

	d := &models.DetailedListing{}
	d.ListingID = listingID
	d.ListingURL = url

	d.Title = Title(ctx, pg)
	d.Description = Description(ctx, pg)
	d.MaxGuests, d.Bedrooms, d.Bathrooms = PropertyFacts(ctx, pg)
	d.IsGuestFavorite, d.IsSuperhost = Badges(ctx, pg)
	d.LocationInfo = Location(ctx, pg)
	d.ReviewScore = OverallReviewScore(ctx, pg, ReviewScoreOptions{
		IncludeCategoryRatings: opts.IncludeCategoryRatings,
	})
	d.NumberOfReviews = d.ReviewScore.ReviewsCount
	d.OverallReviewScore = d.ReviewScore.OverallRating

	d.HostProfileID = HostProfileID(ctx, pg)
	d.CoHosts = CoHosts(ctx, pg, d.HostProfileID)

	if !opts.Quick {
		d.Pricing = Pricing(ctx, pg)
		d.PricePerNight = d.Pricing.PricePerNight
		d.TotalPrice = d.Pricing.TotalFor3Nights
		if d.TotalPrice > 0 {
			d.StayLengthNights = 3
		}

		harvested, err := reviews.Harvest(ctx, pg, reviews.Options{
			ScrollPasses:  opts.ReviewScrollPasses,
			ReportedCount: d.ReviewScore.ReviewsCount,
		})
		if err != nil {
			slog.Debug("review harvest skipped", "listing", listingID, "error", err)
		} else {
			d.Reviews = harvested
		}
		// Leave no modal behind for the passes that re-read the page.
		if err := pg.PressKey(ctx, "Escape"); err != nil {
			slog.Debug("closing reviews modal failed", "error", err)
		}
	}

	// Modal views navigate away and restore the page themselves.
	d.Images = Images(ctx, pg, nav, opts.BaseURL, listingID)
	d.Amenities = Amenities(ctx, pg, nav, opts.BaseURL, listingID)
	d.HouseRules = HouseRulesInfo(ctx, pg, nav, opts.BaseURL, listingID)
	if d.HouseRules.MaxGuests == 0 {
		d.HouseRules.MaxGuests = d.MaxGuests
	}

	if !opts.Quick && d.HostProfileID != "" {
		d.HostProfile = HostProfileInfo(ctx, pg, nav, opts.BaseURL, d.HostProfileID)
	}

	if ctx.Err() != nil {
		return d, ctx.Err()
	}
	return d, nil
}
