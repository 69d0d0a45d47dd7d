package extract

import "testing"

func TestCleanSpace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello   world ", "hello world"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanSpace(tt.in); got != tt.want {
			t.Errorf("CleanSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripLabelPrefix(t *testing.T) {
	prefixes := []string{"My work:", "Work:", "At "}
	tests := []struct {
		in, want string
	}{
		{"My work: Acme Realty", "Acme Realty"},
		{"my work: Acme Realty", "Acme Realty"},
		{"At Seaside Hospitality", "Seaside Hospitality"},
		{"Plumber", "Plumber"},
	}
	for _, tt := range tests {
		if got := StripLabelPrefix(tt.in, prefixes); got != tt.want {
			t.Errorf("StripLabelPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in       string
		amount   float64
		currency string
	}{
		{"$1,234.56 total", 1234.56, "$"},
		{"€89 night", 89, "€"},
		{"£ 420", 420, "£"},
		{"no money here", 0, ""},
		{"₹12,000 for 3 nights", 12000, "₹"},
	}
	for _, tt := range tests {
		amount, currency := ParseMoney(tt.in)
		if amount != tt.amount || currency != tt.currency {
			t.Errorf("ParseMoney(%q) = (%v, %q), want (%v, %q)",
				tt.in, amount, currency, tt.amount, tt.currency)
		}
	}
}
