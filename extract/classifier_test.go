package extract

import "testing"

func TestClassifyHost_WorkWithCompanyKeyword(t *testing.T) {
	got := ClassifyHost(ClassifierInput{
		Name: "Sarah",
		Work: "My work: Sunrise Property Management",
	})
	if !got.IsCompany {
		t.Fatal("expected company classification")
	}
	if got.CompanyName != "Sunrise Property Management" {
		t.Errorf("company name = %q, want label prefix stripped", got.CompanyName)
	}
}

func TestClassifyHost_NameWithKeyword(t *testing.T) {
	got := ClassifyHost(ClassifierInput{Name: "Coastal Rentals"})
	if !got.IsCompany || got.CompanyName != "Coastal Rentals" {
		t.Errorf("got %+v, want company with name kept", got)
	}
}

func TestClassifyHost_NameWithLegalSuffix(t *testing.T) {
	got := ClassifyHost(ClassifierInput{Name: "Harbor Stays LLC"})
	if !got.IsCompany || got.CompanyName != "Harbor Stays LLC" {
		t.Errorf("got %+v, want company via legal suffix", got)
	}
}

func TestClassifyHost_LegalSuffixNeedsWordBoundary(t *testing.T) {
	// "Vincent" contains "inc"; a substring match would misclassify.
	got := ClassifyHost(ClassifierInput{Name: "Vincent"})
	if got.IsCompany {
		t.Errorf("Vincent misclassified as company: %+v", got)
	}
}

func TestClassifyHost_WorkRoleIndicator(t *testing.T) {
	got := ClassifyHost(ClassifierInput{
		Name: "Marta",
		Work: "Work: vacation rental operations",
	})
	if !got.IsCompany {
		t.Fatal("expected company via role indicator")
	}
	if got.CompanyName != "vacation rental operations" {
		t.Errorf("company name = %q", got.CompanyName)
	}
}

func TestClassifyHost_OrgLanguageInAbout(t *testing.T) {
	got := ClassifyHost(ClassifierInput{
		Name:  "Alex",
		About: "We manage a curated set of homes across the coast. Our guests love us.",
	})
	if !got.IsCompany {
		t.Fatal("expected company via about text")
	}
	if got.CompanyName != "Alex" {
		t.Errorf("company name = %q, want host name fallback", got.CompanyName)
	}
}

func TestClassifyHost_Individual(t *testing.T) {
	got := ClassifyHost(ClassifierInput{
		Name:  "Elena",
		Work:  "Teacher",
		About: "I love hiking and sharing my home with travelers.",
	})
	if got.IsCompany {
		t.Errorf("individual misclassified: %+v", got)
	}
	if got.CompanyName != "" {
		t.Errorf("company name should be empty for individuals, got %q", got.CompanyName)
	}
}

func TestClassifyHost_FirstMatchWins(t *testing.T) {
	// Work keyword (priority 1) should win over name legal suffix (priority 3).
	got := ClassifyHost(ClassifierInput{
		Name: "Bayline Ltd",
		Work: "At Harbor Hospitality",
	})
	if got.CompanyName != "Harbor Hospitality" {
		t.Errorf("company name = %q, want work-derived name", got.CompanyName)
	}
}

func TestClassifyHost_EmptyInput(t *testing.T) {
	if got := ClassifyHost(ClassifierInput{}); got.IsCompany {
		t.Errorf("empty input classified as company: %+v", got)
	}
}
