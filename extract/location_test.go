package extract

import "testing"

func TestParseLocationLine(t *testing.T) {
	tests := []struct {
		in                   string
		city, state, country string
	}{
		{"Austin, Texas, United States", "Austin", "Texas", "United States"},
		{"Lisbon, Portugal", "Lisbon", "", "Portugal"},
		{"Reykjavík", "Reykjavík", "", ""},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		got := ParseLocationLine(tt.in)
		if got.City != tt.city || got.State != tt.state || got.Country != tt.country {
			t.Errorf("ParseLocationLine(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.in, got.City, got.State, got.Country, tt.city, tt.state, tt.country)
		}
	}
}

func TestParseLocationLine_FourSegments(t *testing.T) {
	got := ParseLocationLine("Brooklyn, New York, NY, United States")
	if got.City != "Brooklyn" || got.State != "New York, NY" || got.Country != "United States" {
		t.Errorf("got (%q, %q, %q)", got.City, got.State, got.Country)
	}
}

func TestBuildLocation(t *testing.T) {
	tests := []struct {
		name          string
		line, address string
		city, country string
		wantAddress   string
	}{
		{
			"span address kept alongside heading split",
			"Lisbon, Portugal", "Rua Augusta, Baixa, Lisbon",
			"Lisbon", "Portugal", "Rua Augusta, Baixa, Lisbon",
		},
		{
			"span backs up a missing heading",
			"", "Porto, Portugal",
			"Porto", "Portugal", "Porto, Portugal",
		},
		{
			"heading only",
			"Austin, United States", "",
			"Austin", "United States", "Austin, United States",
		},
		{
			"section title is not a location line",
			"Where you'll be", "Kyoto, Japan",
			"Kyoto", "Japan", "Kyoto, Japan",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLocation(tt.line, tt.address, "")
			if got.City != tt.city || got.Country != tt.country || got.Address != tt.wantAddress {
				t.Errorf("buildLocation(%q, %q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.line, tt.address, got.City, got.Country, got.Address,
					tt.city, tt.country, tt.wantAddress)
			}
		})
	}
}

func TestBuildLocation_MapCoordinates(t *testing.T) {
	got := buildLocation("Lisbon, Portugal", "",
		"https://maps.googleapis.com/maps/api/staticmap?center=38.7223,-9.1393&zoom=14")
	if got.Coordinates.Latitude != 38.7223 || got.Coordinates.Longitude != -9.1393 {
		t.Errorf("coordinates = %+v", got.Coordinates)
	}
}

func TestParseMapCenter(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		lat, lng float64
		ok       bool
	}{
		{
			"literal comma",
			"https://maps.googleapis.com/maps/api/staticmap?center=30.2672,-97.7431&zoom=14",
			30.2672, -97.7431, true,
		},
		{
			"encoded comma",
			"https://maps.googleapis.com/maps/api/staticmap?center=48.8566%2C2.3522&zoom=12",
			48.8566, 2.3522, true,
		},
		{"no center", "https://maps.googleapis.com/maps/api/staticmap?zoom=12", 0, 0, false},
		{"empty", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMapCenter(tt.url)
			if ok != tt.ok || got.Latitude != tt.lat || got.Longitude != tt.lng {
				t.Errorf("ParseMapCenter(%q) = (%v, %v, %v), want (%v, %v, %v)",
					tt.url, got.Latitude, got.Longitude, ok, tt.lat, tt.lng, tt.ok)
			}
		})
	}
}
