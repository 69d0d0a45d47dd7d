package extract

import "testing"

const sampleProfileHTML = `<!DOCTYPE html>
<html><body>
<h1>Hi, I'm Dana</h1>
<div>Superhost</div>
<div>Identity verified</div>
<div data-testid="user-profile-stats">
	<div>248
Reviews</div>
	<div>4.92
Rating</div>
	<div>7
Years hosting</div>
</div>
<ul>
	<li>My work: Dana's Coastal Properties</li>
	<li>Lives in Santa Cruz, California</li>
	<li>Pets: One lazy cat</li>
	<li>Speaks English, Spanish, and Portuguese</li>
</ul>
<div data-testid="user-profile-about">I have been hosting on the coast for years.</div>
<img src="https://a0.muscache.com/im/pictures/user/profile_pic-1.jpg">
<a href="/rooms/111">Beach bungalow
Entire home
4.9 (88)</a>
<a href="/rooms/222">Cliffside cabin
Entire cabin
4.8 (40)</a>
</body></html>`

func TestParseHostProfile(t *testing.T) {
	p := ParseHostProfile(sampleProfileHTML)
	if p == nil {
		t.Fatal("ParseHostProfile returned nil")
	}
	if p.Name != "Dana" {
		t.Errorf("Name = %q, want greeting prefix stripped", p.Name)
	}
	if !p.IsSuperhost {
		t.Error("IsSuperhost should be true")
	}
	if !p.IsIdentityVerified {
		t.Error("IsIdentityVerified should be true")
	}
	if p.ReviewsCount != 248 {
		t.Errorf("ReviewsCount = %d, want 248", p.ReviewsCount)
	}
	if p.Rating != 4.92 {
		t.Errorf("Rating = %v, want 4.92", p.Rating)
	}
	if p.YearsHosting != 7 {
		t.Errorf("YearsHosting = %d, want 7", p.YearsHosting)
	}
	if p.Work != "Dana's Coastal Properties" {
		t.Errorf("Work = %q", p.Work)
	}
	if p.Location != "Santa Cruz, California" {
		t.Errorf("Location = %q", p.Location)
	}
	if p.Pets != "One lazy cat" {
		t.Errorf("Pets = %q", p.Pets)
	}
	if len(p.Languages) != 3 || p.Languages[2] != "Portuguese" {
		t.Errorf("Languages = %v", p.Languages)
	}
	if p.About == "" {
		t.Error("About should be set")
	}
	if p.ProfileImageURL == "" {
		t.Error("ProfileImageURL should be set")
	}
	if len(p.Listings) != 2 {
		t.Fatalf("Listings = %d entries, want 2", len(p.Listings))
	}
	if p.Listings[0].Title != "Beach bungalow" || p.Listings[0].Rating != 4.9 || p.Listings[0].ReviewsCount != 88 {
		t.Errorf("first listing = %+v", p.Listings[0])
	}
	// "Dana's Coastal Properties" carries a company keyword.
	if !p.IsCompany || p.CompanyName != "Dana's Coastal Properties" {
		t.Errorf("classifier wiring: IsCompany=%v CompanyName=%q", p.IsCompany, p.CompanyName)
	}
}

func TestParseHostProfile_NoName(t *testing.T) {
	if p := ParseHostProfile("<html><body><p>error page</p></body></html>"); p != nil {
		t.Errorf("profile without a name should be nil, got %+v", p)
	}
}
