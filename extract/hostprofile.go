package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

var (
	listingCardRatingRe = regexp.MustCompile(`([0-5]\.[0-9]{1,2})\s*\((\d+)\)`)
	yearsHostingRe      = regexp.MustCompile(`(?i)(\d+)\s+years?\s+hosting`)
	monthsHostingRe     = regexp.MustCompile(`(?i)\d+\s+months?\s+hosting`)
)

// profileDetailPrefixes are the label-prefixed rows of the host detail list.
var profileDetailPrefixes = struct {
	work, pets, lives, speaks []string
}{
	work:   []string{"My work:", "Work:"},
	lives:  []string{"Lives in"},
	pets:   []string{"Pets:"},
	speaks: []string{"Speaks"},
}

// HostProfileInfo navigates to the host's public profile and parses it. Both
// known URL patterns are tried; the first page whose HTML yields a host name
// wins. Returns nil when neither pattern produced a profile.
func HostProfileInfo(ctx context.Context, pg browser.Page, nav *browser.Navigator, baseURL, hostID string) *models.HostProfile {
	returnURL, err := pg.URL(ctx)
	if err != nil {
		returnURL = ""
	}
	defer func() {
		if returnURL == "" {
			return
		}
		if _, err := nav.Navigate(ctx, pg, returnURL, browser.NavigateOptions{}); err != nil {
			slog.Warn("host profile: failed to restore page", "url", returnURL, "error", err)
		}
	}()

	for _, url := range HostProfileURLs(baseURL, hostID) {
		if _, err := nav.Navigate(ctx, pg, url, browser.NavigateOptions{}); err != nil {
			slog.Debug("host profile: navigation failed", "url", url, "error", err)
			continue
		}
		page, err := pg.HTML(ctx)
		if err != nil {
			slog.Debug("host profile: reading html failed", "url", url, "error", err)
			continue
		}
		if profile := ParseHostProfile(page); profile != nil {
			return profile
		}
	}
	return nil
}

// ParseHostProfile parses a host-profile page's HTML. Pure; returns nil when
// no host name can be found, which is the signal to try the next URL pattern.
func ParseHostProfile(page string) *models.HostProfile {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}

	p := &models.HostProfile{}
	p.Name = profileName(doc)
	if p.Name == "" {
		return nil
	}

	bodyText := doc.Find("body").Text()
	p.IsSuperhost = strings.Contains(bodyText, "Superhost")
	p.IsIdentityVerified = strings.Contains(strings.ToLower(bodyText), "identity verified")

	parseProfileStats(doc, bodyText, p)
	parseProfileDetails(doc, p)

	p.About = CleanSpace(doc.Find(`[data-testid="user-profile-about"], #about-section`).First().Text())
	if img, ok := doc.Find(`img[src*="profile_pic"], img[src*="/user/"]`).First().Attr("src"); ok {
		p.ProfileImageURL = img
	}
	p.Listings = parseHostListings(doc)

	cls := ClassifyHost(ClassifierInput{Name: p.Name, Work: p.Work, About: p.About})
	p.IsCompany = cls.IsCompany
	p.CompanyName = cls.CompanyName
	return p
}

func profileName(doc *goquery.Document) string {
	for _, sel := range []string{`[data-testid="user-profile-heading"]`, "h1", "h2"} {
		name := CleanSpace(doc.Find(sel).First().Text())
		name = StripLabelPrefix(name, []string{"Hi, I'm", "Hi, I’m", "About"})
		if name != "" && len(name) < 80 {
			return name
		}
	}
	return ""
}

// parseProfileStats reads the value/label stat tiles (reviews, rating, years
// hosting).
func parseProfileStats(doc *goquery.Document, bodyText string, p *models.HostProfile) {
	doc.Find(`[data-testid="user-profile-stats"] > div, [data-testid="user-profile-stats"] li`).Each(func(_ int, s *goquery.Selection) {
		parts := strings.Split(strings.TrimSpace(s.Text()), "\n")
		if len(parts) < 2 {
			// Single-line tiles render as "123Reviews".
			parts = splitStatTile(s.Text())
		}
		if len(parts) < 2 {
			return
		}
		value, label := strings.TrimSpace(parts[0]), strings.ToLower(strings.TrimSpace(parts[1]))
		switch {
		case strings.HasPrefix(label, "review"):
			p.ReviewsCount, _ = strconv.Atoi(value)
		case strings.HasPrefix(label, "rating"):
			p.Rating, _ = strconv.ParseFloat(value, 64)
		case strings.Contains(label, "hosting"):
			p.YearsHosting, _ = strconv.Atoi(value)
		}
	})

	if p.YearsHosting == 0 {
		if m := yearsHostingRe.FindStringSubmatch(bodyText); m != nil {
			p.YearsHosting, _ = strconv.Atoi(m[1])
		} else if monthsHostingRe.MatchString(bodyText) {
			p.YearsHosting = 0
		}
	}
}

// splitStatTile splits a "4.95Rating" style tile at the digit/letter border.
func splitStatTile(s string) []string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if i > 0 && (r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			prev := rune(s[i-1])
			if prev >= '0' && prev <= '9' || prev == '.' {
				return []string{s[:i], s[i:]}
			}
		}
	}
	return nil
}

// parseProfileDetails reads the label-prefixed detail rows.
func parseProfileDetails(doc *goquery.Document, p *models.HostProfile) {
	doc.Find("li, [data-testid^='user-profile-detail']").Each(func(_ int, s *goquery.Selection) {
		row := CleanSpace(s.Text())
		if row == "" || len(row) > 160 {
			return
		}
		lower := strings.ToLower(row)
		switch {
		case p.Work == "" && hasAnyPrefix(lower, profileDetailPrefixes.work):
			p.Work = StripLabelPrefix(row, profileDetailPrefixes.work)
		case p.Pets == "" && hasAnyPrefix(lower, profileDetailPrefixes.pets):
			p.Pets = StripLabelPrefix(row, profileDetailPrefixes.pets)
		case p.Location == "" && hasAnyPrefix(lower, profileDetailPrefixes.lives):
			p.Location = StripLabelPrefix(row, profileDetailPrefixes.lives)
		case len(p.Languages) == 0 && hasAnyPrefix(lower, profileDetailPrefixes.speaks):
			langs := StripLabelPrefix(row, profileDetailPrefixes.speaks)
			for _, l := range strings.FieldsFunc(langs, func(r rune) bool { return r == ',' }) {
				l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "and "))
				if l != "" {
					p.Languages = append(p.Languages, l)
				}
			}
		}
	})
}

func hasAnyPrefix(lower string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// parseHostListings reads the host's listing-card roster.
func parseHostListings(doc *goquery.Document) []models.HostListing {
	var out []models.HostListing
	seen := make(map[string]struct{})
	doc.Find(`a[href*="/rooms/"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		parts := strings.Split(s.Text(), "\n")
		var clean []string
		for _, p := range parts {
			if c := CleanSpace(p); c != "" {
				clean = append(clean, c)
			}
		}
		if len(clean) == 0 {
			return
		}
		hl := models.HostListing{Title: clean[0], URL: href}
		if len(clean) > 1 {
			hl.Subtitle = clean[1]
		}
		if m := listingCardRatingRe.FindStringSubmatch(s.Text()); m != nil {
			hl.Rating, _ = strconv.ParseFloat(m[1], 64)
			hl.ReviewsCount, _ = strconv.Atoi(m[2])
		}
		out = append(out, hl)
	})
	return out
}
