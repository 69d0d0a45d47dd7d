package crawl

import "testing"

func TestParseSearchCard(t *testing.T) {
	card := rawCard{
		Href:       "https://www.airbnb.com/rooms/12345?check_in=2026-09-01",
		Title:      "Bright loft downtown",
		Subtitle:   "2 bedrooms · 3 beds",
		PriceText:  "$420 for 2 nights",
		RatingText: "4.85 (132)",
	}
	s, ok := ParseSearchCard(card, "Austin, TX")
	if !ok {
		t.Fatal("expected card to parse")
	}
	if s.ListingID != "12345" {
		t.Errorf("ListingID = %q", s.ListingID)
	}
	if s.ListingURL != "https://www.airbnb.com/rooms/12345" {
		t.Errorf("ListingURL = %q, want query trimmed", s.ListingURL)
	}
	if s.Location != "Austin, TX" {
		t.Errorf("Location = %q", s.Location)
	}
	if s.Bedrooms != 2 {
		t.Errorf("Bedrooms = %d, want 2", s.Bedrooms)
	}
	if s.TotalPrice != 420 || s.StayLengthNights != 2 {
		t.Errorf("total = %v over %d nights", s.TotalPrice, s.StayLengthNights)
	}
	if s.PricePerNight != 210 {
		t.Errorf("PricePerNight = %v, want 210", s.PricePerNight)
	}
	if s.OverallReviewScore != 4.85 || s.NumberOfReviews != 132 {
		t.Errorf("rating = (%v, %d)", s.OverallReviewScore, s.NumberOfReviews)
	}
}

func TestParseSearchCard_NightlyPrice(t *testing.T) {
	s, ok := ParseSearchCard(rawCard{
		Href:      "https://www.airbnb.com/rooms/7",
		Title:     "Cabin",
		PriceText: "$89 night",
	}, "Denver, CO")
	if !ok {
		t.Fatal("expected card to parse")
	}
	if s.PricePerNight != 89 || s.TotalPrice != 0 {
		t.Errorf("got per-night %v, total %v", s.PricePerNight, s.TotalPrice)
	}
}

func TestParseSearchCard_NonListingLink(t *testing.T) {
	if _, ok := ParseSearchCard(rawCard{Href: "https://www.airbnb.com/wishlists/9"}, "x"); ok {
		t.Error("link without a room id should be dropped")
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("https://www.airbnb.com/", "Austin, TX")
	want := "https://www.airbnb.com/s/Austin,%20TX/homes"
	if got != want {
		t.Errorf("SearchURL = %q, want %q", got, want)
	}
}
