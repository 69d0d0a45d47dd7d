package extract

import (
	"regexp"
	"strings"
)

// ClassifierInput is the host text the classifier operates on.
type ClassifierInput struct {
	Name  string
	Work  string
	About string
}

// ClassifierResult is the classification outcome. CompanyName is empty when
// IsCompany is false.
type ClassifierResult struct {
	IsCompany   bool
	CompanyName string
}

// companyKeywords are terms that mark a name or work line as organizational.
// Legal suffixes are matched by legalSuffixRe with word boundaries instead
// of appearing here, where substring matching would false-positive on names
// like "Vincent".
var companyKeywords = []string{
	"property", "properties", "management", "rental", "rentals",
	"realty", "real estate", "hospitality", "company",
}

// legalSuffixRe matches corporate legal suffixes.
var legalSuffixRe = regexp.MustCompile(`(?i)\b(llc|inc|corp|ltd|co\.)(\b|$)`)

// roleIndicators are work phrases that imply an organization even without a
// legal suffix.
var roleIndicators = []string{
	"property management", "vacation rental", "hospitality",
	"short-term rental", "real estate",
}

// orgLanguage are about-text phrases written in a corporate voice.
var orgLanguage = []string{
	"our company", "we manage", "our portfolio", "our team",
	"we specialize", "our properties", "our guests",
}

// workLabelPrefixes are label prefixes stripped from work text before it is
// returned as a company name.
var workLabelPrefixes = []string{"My work:", "Work:", "At ", "For "}

// ClassifyHost decides whether a host is an organization or a person based
// on name/work/about text. Pure function; the first matching priority wins
// and no further checks run.
func ClassifyHost(in ClassifierInput) ClassifierResult {
	name := strings.TrimSpace(in.Name)
	work := strings.TrimSpace(in.Work)
	about := strings.TrimSpace(in.About)

	// 1. Work text carrying a company keyword or legal suffix.
	if work != "" && (containsKeyword(work, companyKeywords) || legalSuffixRe.MatchString(work)) {
		return ClassifierResult{IsCompany: true, CompanyName: StripLabelPrefix(work, workLabelPrefixes)}
	}

	// 2. Name carrying a company keyword.
	if name != "" && containsKeyword(name, companyKeywords) {
		return ClassifierResult{IsCompany: true, CompanyName: name}
	}

	// 3. Name carrying a legal suffix.
	if name != "" && legalSuffixRe.MatchString(name) {
		return ClassifierResult{IsCompany: true, CompanyName: name}
	}

	// 4. Work text with a role-indicator phrase.
	if work != "" && containsKeyword(work, roleIndicators) {
		return ClassifierResult{IsCompany: true, CompanyName: StripLabelPrefix(work, workLabelPrefixes)}
	}

	// 5. Organizational language in the about text.
	if about != "" && containsKeyword(about, orgLanguage) {
		if work != "" {
			return ClassifierResult{IsCompany: true, CompanyName: StripLabelPrefix(work, workLabelPrefixes)}
		}
		return ClassifierResult{IsCompany: true, CompanyName: name}
	}

	return ClassifierResult{}
}

func containsKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
