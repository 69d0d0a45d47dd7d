package extract

import "testing"

func TestParseStayTotal(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		total    float64
		currency string
		ok       bool
	}{
		{"amount then nights", "Total $309 for 3 nights before taxes", 309, "$", true},
		{"nights then amount", "3 nights · €450", 450, "€", true},
		{"thousands separator", "$1,299 for 3 nights", 1299, "$", true},
		{"wrong night count", "Total $500 for 5 nights", 0, "", false},
		{"no money", "3 nights selected", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, currency, ok := ParseStayTotal(tt.in)
			if ok != tt.ok || total != tt.total || currency != tt.currency {
				t.Errorf("ParseStayTotal(%q) = (%v, %q, %v), want (%v, %q, %v)",
					tt.in, total, currency, ok, tt.total, tt.currency, tt.ok)
			}
		})
	}
}

func TestPerNightFromTotal(t *testing.T) {
	if got := PerNightFromTotal(309); got != 103 {
		t.Errorf("PerNightFromTotal(309) = %v, want 103", got)
	}
	// 310/3 = 103.33..., rounds to 103.
	if got := PerNightFromTotal(310); got != 103 {
		t.Errorf("PerNightFromTotal(310) = %v, want 103", got)
	}
	// 311/3 = 103.66..., rounds to 104.
	if got := PerNightFromTotal(311); got != 104 {
		t.Errorf("PerNightFromTotal(311) = %v, want 104", got)
	}
}
