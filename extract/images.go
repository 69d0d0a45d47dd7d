package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/stayharvest/stayharvest/browser"
)

const (
	// maxGalleryKeyPresses caps the "next image" key simulation so a broken
	// next-control can never spin forever.
	maxGalleryKeyPresses = 100

	galleryScrollPasses = 12
)

// imageAllowSegments mark listing photo assets on the CDN.
var imageAllowSegments = []string{"/im/pictures", "/pictures/"}

// imageDenySegments mark avatar and profile assets that share the CDN.
var imageDenySegments = []string{"profile_pic", "/user/", "/users/", "avatar"}

// Images collects the listing's photo gallery from the dedicated photo-tour
// view. It scrolls the gallery in viewport increments to trigger lazy
// loading, pages the lightbox with ArrowRight up to a safety cap, gathers
// candidate URLs from three channels, filters and deduplicates them, and
// restores the page to its previous URL before returning. Empty slice on
// any failure.
func Images(ctx context.Context, pg browser.Page, nav *browser.Navigator, baseURL, listingID string) []string {
	returnURL, err := pg.URL(ctx)
	if err != nil {
		slog.Debug("images: could not read current url", "error", err)
		returnURL = ListingURL(baseURL, listingID)
	}
	defer func() {
		if _, err := nav.Navigate(ctx, pg, returnURL, browser.NavigateOptions{}); err != nil {
			slog.Warn("images: failed to restore page", "url", returnURL, "error", err)
		}
	}()

	if _, err := nav.Navigate(ctx, pg, PhotoTourURL(baseURL, listingID), browser.NavigateOptions{}); err != nil {
		slog.Debug("images: photo tour navigation failed", "listing", listingID, "error", err)
		return nil
	}

	scrollGallery(ctx, pg)
	pageLightbox(ctx, pg)

	raw := evalStrings(ctx, pg, `() => {
		const urls = [];
		// Channel 1: original-resolution attribute.
		for (const el of document.querySelectorAll('[data-original-uri]')) {
			urls.push(el.getAttribute('data-original-uri'));
		}
		// Channel 2: picture child images.
		for (const img of document.querySelectorAll('picture img')) {
			if (img.src) urls.push(img.src);
		}
		// Channel 3: any CDN-hosted image.
		for (const img of document.querySelectorAll('img[src*="muscache.com"]')) {
			if (img.src) urls.push(img.src);
		}
		return urls.filter(u => !!u);
	}`)

	return FilterImageURLs(raw)
}

// scrollGallery scrolls the gallery container in viewport-height increments.
func scrollGallery(ctx context.Context, pg browser.Page) {
	var viewportHeight float64
	if err := pg.Eval(ctx, `() => window.innerHeight`, &viewportHeight); err != nil || viewportHeight <= 0 {
		viewportHeight = 800
	}
	for i := 0; i < galleryScrollPasses; i++ {
		if err := pg.Scroll(ctx, viewportHeight); err != nil {
			slog.Debug("images: scroll failed", "error", err)
			return
		}
		if err := browser.Sleep(ctx, 400*time.Millisecond); err != nil {
			return
		}
	}
}

// pageLightbox advances the lightbox with ArrowRight until the next control
// reports disabled or the safety cap is hit.
func pageLightbox(ctx context.Context, pg browser.Page) {
	for i := 0; i < maxGalleryKeyPresses; i++ {
		disabled := evalBool(ctx, pg, `() => {
			const next = document.querySelector('[aria-label="Next"], button[aria-label*="next photo" i]');
			if (!next) return true;
			return next.disabled || next.getAttribute('aria-disabled') === 'true';
		}`)
		if disabled {
			return
		}
		if err := pg.PressKey(ctx, "ArrowRight"); err != nil {
			slog.Debug("images: key press failed", "error", err)
			return
		}
		if err := browser.Sleep(ctx, 150*time.Millisecond); err != nil {
			return
		}
	}
}

// FilterImageURLs keeps CDN listing photos, drops avatar/profile assets and
// duplicates. Insertion order is discovery order.
func FilterImageURLs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, u := range raw {
		if u == "" {
			continue
		}
		if !containsAny(u, imageAllowSegments) {
			continue
		}
		if containsAny(u, imageDenySegments) {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
