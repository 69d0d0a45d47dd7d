package models

import "testing"

func TestIsNumericID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12345", true},
		{"0", true},
		{"", false},
		{"12a45", false},
		{"-5", false},
		{"12 45", false},
	}
	for _, tt := range tests {
		if got := IsNumericID(tt.in); got != tt.want {
			t.Errorf("IsNumericID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSearchRequest_Defaults(t *testing.T) {
	r := SearchRequest{Location: "Austin, TX"}
	r.Defaults()
	if r.MaxListings != 20 {
		t.Errorf("MaxListings = %d, want 20", r.MaxListings)
	}
	if r.MinDelayMs <= 0 || r.MaxDelayMs < r.MinDelayMs {
		t.Errorf("delay bounds = (%d, %d)", r.MinDelayMs, r.MaxDelayMs)
	}
}

func TestSearchRequest_ValidateEmptyLocation(t *testing.T) {
	r := SearchRequest{Location: "   "}
	serr := r.Validate()
	if serr == nil {
		t.Fatal("expected validation error")
	}
	if serr.Code != ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q", serr.Code, ErrCodeInvalidInput)
	}
}

func TestScrapeJobRequest_Defaults(t *testing.T) {
	r := ScrapeJobRequest{Location: "Lisbon"}
	r.Defaults()
	if r.MaxListings != 10 {
		t.Errorf("MaxListings = %d, want 10", r.MaxListings)
	}
}

func TestListingRequest_Validate(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{"987654", true},
		{"", false},
		{"abc", false},
		{"12 34", false},
	}
	for _, tt := range tests {
		r := ListingRequest{ListingID: tt.id}
		err := r.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q) error = %v, want ok=%v", tt.id, err, tt.ok)
		}
	}
}

func TestScrapeError_Unwrap(t *testing.T) {
	inner := NewScrapeError(ErrCodeTimeout, "inner", nil)
	outer := NewScrapeError(ErrCodeNavigation, "outer", inner)
	if outer.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
	detail := outer.ToDetail()
	if detail.Code != ErrCodeNavigation || detail.Message != "outer" {
		t.Errorf("ToDetail = %+v", detail)
	}
}
