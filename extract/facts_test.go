package extract

import "testing"

func TestParsePropertyFacts(t *testing.T) {
	text := "Entire home hosted by Dana\n6 guests · 3 bedrooms · 4 beds · 2.5 baths"
	guests, bedrooms, baths := ParsePropertyFacts(text)
	if guests != 6 {
		t.Errorf("guests = %d, want 6", guests)
	}
	if bedrooms != 3 {
		t.Errorf("bedrooms = %d, want 3", bedrooms)
	}
	if baths != 2.5 {
		t.Errorf("baths = %v, want 2.5", baths)
	}
}

func TestParsePropertyFacts_Singular(t *testing.T) {
	guests, bedrooms, baths := ParsePropertyFacts("2 guests · 1 bedroom · 1 bath")
	if guests != 2 || bedrooms != 1 || baths != 1 {
		t.Errorf("got (%d, %d, %v), want (2, 1, 1)", guests, bedrooms, baths)
	}
}

func TestParsePropertyFacts_Missing(t *testing.T) {
	guests, bedrooms, baths := ParsePropertyFacts("Lovely place near the beach")
	if guests != 0 || bedrooms != 0 || baths != 0 {
		t.Errorf("missing facts should stay zero, got (%d, %d, %v)", guests, bedrooms, baths)
	}
}
