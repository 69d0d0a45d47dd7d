package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/models"
)

var hostLinkIDRe = regexp.MustCompile(`/users/(?:show/)?(\d+)`)

// hostIDDOMStrategies each return a host link href (or '') from a different
// region of the listing page, in priority order.
var hostIDDOMStrategies = []string{
	// "Meet your host" section.
	`() => {
		const sec = document.querySelector('[data-section-id="MEET_YOUR_HOST"]');
		const a = sec && sec.querySelector('a[href*="/users/"]');
		return a ? a.href : '';
	}`,
	// Host overview section.
	`() => {
		const sec = document.querySelector('[data-section-id="HOST_OVERVIEW_DEFAULT"], [data-section-id="HOST_PROFILE_DEFAULT"]');
		const a = sec && sec.querySelector('a[href*="/users/"]');
		return a ? a.href : '';
	}`,
	// Aria-labeled "full profile" link.
	`() => {
		const a = document.querySelector('a[aria-label*="full profile" i]');
		return a ? a.href : '';
	}`,
	// Section enclosing a "Learn more" control.
	`() => {
		const btn = [...document.querySelectorAll('button, a')].find(b => /learn more/i.test(b.innerText));
		if (!btn) return '';
		const sec = btn.closest('section, div[data-section-id]');
		const a = sec && sec.querySelector('a[href*="/users/"]');
		return a ? a.href : '';
	}`,
	// Any host link outside the reviews section.
	`() => {
		for (const a of document.querySelectorAll('a[href*="/users/show/"]')) {
			if (!a.closest('[data-section-id*="REVIEWS"]')) return a.href;
		}
		return '';
	}`,
}

// HostProfileID resolves the primary host's numeric profile id. DOM
// strategies are tried in priority order; when all miss, every inline script
// body is mined for identifier-shaped keys. Returns "" when nothing is found.
func HostProfileID(ctx context.Context, pg browser.Page) string {
	for _, js := range hostIDDOMStrategies {
		href := evalString(ctx, pg, js)
		if m := hostLinkIDRe.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}

	page, err := pg.HTML(ctx)
	if err != nil {
		slog.Debug("host id: reading page html failed", "error", err)
		return ""
	}
	return MineHostID(page)
}

// hostIDKeyRe matches identifier keys worth mining.
var hostIDKeyRe = regexp.MustCompile(`(?i)^(primary)?[_]?(host|user)[_]?id$`)

// scriptIDPairRe is the regex fallback when a script body is not valid JSON.
var scriptIDPairRe = regexp.MustCompile(`(?i)"((?:primary)?(?:host|user)_?id)"\s*:\s*"?(\d+)"?`)

type hostIDCandidate struct {
	id     string
	weight int
}

// beats implements the tie-break order: key weight ("host" beats "user"),
// then longer numeric string, then larger numeric value. Best-effort
// heuristic, not a contract.
func (c hostIDCandidate) beats(o hostIDCandidate) bool {
	if c.weight != o.weight {
		return c.weight > o.weight
	}
	if len(c.id) != len(o.id) {
		return len(c.id) > len(o.id)
	}
	return c.id > o.id
}

// MineHostID scans every inline script body of the page for numeric
// identifiers under host/user id keys and returns the top-weighted
// candidate, or "".
func MineHostID(page string) string {
	var best hostIDCandidate
	consider := func(c hostIDCandidate) {
		if c.id != "" && (best.id == "" || c.beats(best)) {
			best = c
		}
	}

	for _, body := range inlineScriptBodies(page) {
		var decoded any
		if err := json.Unmarshal([]byte(body), &decoded); err == nil {
			walkJSONIDs(decoded, "", consider)
			continue
		}
		// Not parseable as JSON: regex-scan the raw script text.
		for _, m := range scriptIDPairRe.FindAllStringSubmatch(body, -1) {
			consider(hostIDCandidate{id: m[2], weight: keyWeight(m[1], "")})
		}
	}
	return best.id
}

// inlineScriptBodies extracts the text of every <script> element.
func inlineScriptBodies(page string) []string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}
	sel, err := cascadia.Parse("script")
	if err != nil {
		return nil
	}
	var bodies []string
	for _, node := range cascadia.QueryAll(doc, sel) {
		var sb strings.Builder
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		if body := strings.TrimSpace(sb.String()); body != "" {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// walkJSONIDs walks a decoded JSON structure collecting numeric values under
// identifier keys.
func walkJSONIDs(v any, path string, consider func(hostIDCandidate)) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			childPath := path + "." + k
			if hostIDKeyRe.MatchString(k) {
				if id := numericValue(child); id != "" {
					consider(hostIDCandidate{id: id, weight: keyWeight(k, path)})
				}
			}
			walkJSONIDs(child, childPath, consider)
		}
	case []any:
		for _, child := range val {
			walkJSONIDs(child, path, consider)
		}
	}
}

func numericValue(v any) string {
	switch val := v.(type) {
	case string:
		if models.IsNumericID(val) {
			return val
		}
	case float64:
		if val > 0 && val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
	}
	return ""
}

// keyWeight prefers "host"-tagged keys over "user"-tagged ones, considering
// the enclosing path as well.
func keyWeight(key, path string) int {
	lk, lp := strings.ToLower(key), strings.ToLower(path)
	switch {
	case strings.Contains(lk, "host") || strings.Contains(lp, "host"):
		return 3
	case strings.Contains(lk, "user") || strings.Contains(lp, "user"):
		return 2
	default:
		return 1
	}
}

// coHostSiblingBudget bounds the sibling scan from the co-host heading to
// its list.
const coHostSiblingBudget = 6

// CoHosts extracts co-host profile links. It looks for a "co-host" heading
// and the nearest following list; when that search space is empty it falls
// back to treating every host-section link after the first as a co-host.
func CoHosts(ctx context.Context, pg browser.Page, primaryHostID string) []models.CoHost {
	type rawCoHost struct {
		Href string `json:"href"`
		Name string `json:"name"`
	}
	var raw []rawCoHost
	js := fmt.Sprintf(`() => {
		const out = [];
		const fromLink = (a) => {
			let name = '';
			const label = a.getAttribute('aria-label') || '';
			const m = label.match(/host,\s*([^.]+)\./i);
			if (m) name = m[1].trim();
			if (!name) {
				const sib = a.querySelector('[data-testid="cohost-name"]') || a.nextElementSibling;
				if (sib && sib.innerText) name = sib.innerText.trim();
			}
			out.push({href: a.href, name: name});
		};

		const heading = [...document.querySelectorAll('h1, h2, h3, div[role="heading"]')]
			.find(h => /co-host/i.test(h.innerText));
		if (heading) {
			let el = heading;
			for (let i = 0; i < %d && el; i++) {
				el = el.nextElementSibling;
				if (el && (el.tagName === 'UL' || el.tagName === 'OL' || el.querySelector('ul, ol'))) {
					const list = (el.tagName === 'UL' || el.tagName === 'OL') ? el : el.querySelector('ul, ol');
					for (const a of list.querySelectorAll('a[href*="/users/"]')) fromLink(a);
					break;
				}
			}
		}

		if (out.length === 0) {
			const sec = document.querySelector('[data-section-id="MEET_YOUR_HOST"], [data-section-id="HOST_OVERVIEW_DEFAULT"]');
			if (sec) {
				const links = [...sec.querySelectorAll('a[href*="/users/"]')];
				for (const a of links.slice(1)) fromLink(a);
			}
		}
		return out;
	}`, coHostSiblingBudget)

	if err := pg.Eval(ctx, js, &raw); err != nil {
		slog.Debug("co-host extraction failed", "error", err)
		return nil
	}

	seen := map[string]struct{}{primaryHostID: {}}
	var out []models.CoHost
	for _, r := range raw {
		m := hostLinkIDRe.FindStringSubmatch(r.Href)
		if m == nil {
			continue
		}
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, models.CoHost{Name: CleanSpace(r.Name), ProfileID: m[1]})
	}
	return out
}
