package reviews

import (
	"testing"

	"github.com/stayharvest/stayharvest/models"
)

func TestParseReviewMeta(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.ReviewDetails
	}{
		{
			"city country and date",
			"Austin, Texas · March 2025",
			models.ReviewDetails{City: "Austin", Country: "Texas", Date: "March 2025"},
		},
		{
			"relative date",
			"Lisbon, Portugal · 2 weeks ago",
			models.ReviewDetails{City: "Lisbon", Country: "Portugal", Date: "2 weeks ago"},
		},
		{
			"bare date",
			"December 2024",
			models.ReviewDetails{Date: "December 2024"},
		},
		{
			"bullet separator",
			"Paris, France • May 2025",
			models.ReviewDetails{City: "Paris", Country: "France", Date: "May 2025"},
		},
		{"empty", "", models.ReviewDetails{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseReviewMeta(tt.in); got != tt.want {
				t.Errorf("ParseReviewMeta(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToReview_StarLabel(t *testing.T) {
	r := rawReview{
		ID:        "r1",
		Name:      "Sam",
		Text:      "Great stay.",
		StarLabel: "Rating, 5 stars",
		Meta:      "June 2025",
	}
	rev := r.toReview()
	if rev.Score != 5 {
		t.Errorf("Score = %d, want 5", rev.Score)
	}
	if rev.ReviewID != "r1" || rev.Name != "Sam" {
		t.Errorf("identity fields lost: %+v", rev)
	}
	if rev.Details.Date != "June 2025" {
		t.Errorf("Details.Date = %q", rev.Details.Date)
	}
}

func TestDedupe(t *testing.T) {
	in := []models.Review{
		{ReviewID: "a", Name: "first"},
		{ReviewID: "b"},
		{ReviewID: "a", Name: "second"},
		{ReviewID: ""},
	}
	out := dedupe(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ReviewID != "a" || out[0].Name != "first" {
		t.Errorf("first occurrence should win: %+v", out[0])
	}
	if out[1].ReviewID != "b" {
		t.Errorf("order not preserved: %+v", out)
	}
}
