package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

var (
	bareRatingRe   = regexp.MustCompile(`^([0-5](?:\.[0-9]{1,2})?)$`)
	reviewCountRe  = regexp.MustCompile(`(?i)(\d+)\s+reviews?`)
	categoryLineRe = regexp.MustCompile(`(?i)^(cleanliness|accuracy|check-?in|communication|location|value)\s*\n?\s*([0-5](?:\.[0-9])?)$`)
)

// ReviewScoreOptions controls the optional category-ratings pass. The
// breakdown lives in the reviews modal, so collecting it costs an extra
// interaction round; it is off unless asked for.
type ReviewScoreOptions struct {
	IncludeCategoryRatings bool
}

// OverallReviewScore extracts the overall rating and review count from the
// listing page. Spans are scanned for a bare 0-5 decimal; the count comes
// from an "N reviews" phrase anywhere on the page.
func OverallReviewScore(ctx context.Context, pg browser.Page, opts ReviewScoreOptions) models.ReviewScore {
	spans := evalStrings(ctx, pg, `() => {
		const out = [];
		const sec = document.querySelector('[data-section-id="REVIEWS_DEFAULT"], [data-section-id="OVERVIEW_DEFAULT"]');
		const root = sec || document;
		for (const s of root.querySelectorAll('span, div[aria-hidden="true"]')) {
			const t = s.innerText ? s.innerText.trim() : '';
			if (t && t.length <= 5) out.push(t);
		}
		return out;
	}`)

	var score models.ReviewScore
	for _, s := range spans {
		if m := bareRatingRe.FindStringSubmatch(s); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && strings.Contains(m[1], ".") {
				score.OverallRating = v
				break
			}
		}
	}

	body := evalString(ctx, pg, `() => document.body.innerText`)
	if m := reviewCountRe.FindStringSubmatch(body); m != nil {
		score.ReviewsCount, _ = strconv.Atoi(m[1])
	}

	if opts.IncludeCategoryRatings {
		score.CategoryRatings = categoryRatings(ctx, pg)
	}
	return score
}

// categoryRatings reads the per-category breakdown rendered near the rating
// header. Lines come back as "Name\nScore" pairs.
func categoryRatings(ctx context.Context, pg browser.Page) models.CategoryRatings {
	lines := evalStrings(ctx, pg, `() => {
		const out = [];
		const names = /^(cleanliness|accuracy|check-?in|communication|location|value)$/i;
		for (const el of document.querySelectorAll('div, li')) {
			const t = el.innerText ? el.innerText.trim() : '';
			const parts = t.split('\n').map(p => p.trim()).filter(Boolean);
			if (parts.length === 2 && names.test(parts[0]) && /^[0-5](\.[0-9])?$/.test(parts[1])) {
				out.push(parts[0] + '\n' + parts[1]);
			}
		}
		return out;
	}`)
	return ParseCategoryLines(lines)
}

// ParseCategoryLines folds "Name\nScore" pairs into a CategoryRatings. Later
// duplicates win, which is harmless since the page repeats identical values.
func ParseCategoryLines(lines []string) models.CategoryRatings {
	var cr models.CategoryRatings
	for _, line := range lines {
		m := categoryLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(strings.ReplaceAll(m[1], "-", "")) {
		case "cleanliness":
			cr.Cleanliness = v
		case "accuracy":
			cr.Accuracy = v
		case "checkin":
			cr.CheckIn = v
		case "communication":
			cr.Communication = v
		case "location":
			cr.Location = v
		case "value":
			cr.Value = v
		}
	}
	return cr
}
