package reviews

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stayharvest/stayharvest/models"
)

var (
	starsRe = regexp.MustCompile(`(?i)rating,?\s*(\d)\s*(?:out of 5\s*)?stars?`)
	dateRe  = regexp.MustCompile(`(?i)^((?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}|\d+\s+(?:days?|weeks?|months?|years?)\s+ago|yesterday|today|last week)$`)
)

// rawReview is the shape the in-page collector returns per review card.
type rawReview struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	StarLabel string `json:"starLabel"`
	Meta      string `json:"meta"`
}

// toReview converts a collected card into a Review. Empty id cards are
// dropped by the caller; everything else is best-effort.
func (r rawReview) toReview() models.Review {
	rev := models.Review{
		ReviewID: strings.TrimSpace(r.ID),
		Name:     strings.TrimSpace(r.Name),
		Text:     strings.TrimSpace(r.Text),
		Details:  ParseReviewMeta(r.Meta),
	}
	if m := starsRe.FindStringSubmatch(r.StarLabel); m != nil {
		rev.Score, _ = strconv.Atoi(m[1])
	}
	return rev
}

// ParseReviewMeta splits the reviewer metadata line. The line is either
// "City, Country · Date", "Location · Date" or a bare date. The separator
// varies between a middle dot and a bullet.
func ParseReviewMeta(meta string) models.ReviewDetails {
	var d models.ReviewDetails
	meta = strings.TrimSpace(meta)
	if meta == "" {
		return d
	}

	parts := splitMeta(meta)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d.Date == "" && dateRe.MatchString(strings.ToLower(part)) {
			d.Date = part
			continue
		}
		if d.City == "" {
			if city, country, ok := strings.Cut(part, ","); ok {
				d.City, d.Country = strings.TrimSpace(city), strings.TrimSpace(country)
			} else {
				d.City = part
			}
		}
	}
	// A lone unrecognized segment is more likely a date than a city.
	if len(parts) == 1 && d.Date == "" && d.Country == "" {
		d.Date, d.City = d.City, ""
	}
	return d
}

func splitMeta(meta string) []string {
	for _, sep := range []string{"·", "•", " - "} {
		if strings.Contains(meta, sep) {
			return strings.Split(meta, sep)
		}
	}
	return []string{meta}
}

// dedupe keeps the first occurrence of each review id, preserving order.
func dedupe(in []models.Review) []models.Review {
	seen := make(map[string]struct{}, len(in))
	var out []models.Review
	for _, r := range in {
		if r.ReviewID == "" {
			continue
		}
		if _, dup := seen[r.ReviewID]; dup {
			continue
		}
		seen[r.ReviewID] = struct{}{}
		out = append(out, r)
	}
	return out
}
