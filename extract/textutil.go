package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// CleanSpace collapses whitespace runs and trims the result.
func CleanSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// StripLabelPrefix removes the first matching label prefix (case-insensitive)
// from s and trims the remainder. The same label texts recur across the
// host-profile detail rows, house rules and classifier inputs, so the
// stripping lives in one place.
func StripLabelPrefix(s string, prefixes []string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, p := range prefixes {
		pl := strings.ToLower(p)
		if strings.HasPrefix(lower, pl) {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}

// ParseMoney parses a monetary amount out of raw text, stripping the
// currency symbol and thousands separators. Returns 0 when no amount found.
var moneyRe = regexp.MustCompile(`([€$£¥₹])\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

func ParseMoney(raw string) (amount float64, currency string) {
	m := moneyRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return 0, ""
	}
	return v, m[1]
}

// firstSubmatch returns the first capture group of re in text, or "".
func firstSubmatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
