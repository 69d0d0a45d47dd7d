package extract

import (
	"context"

	"github.com/stayharvest/stayharvest/browser"
)

// titleStrategies are tried in priority order until one yields a value.
// The order is data, not control flow, so the chain is trivially testable.
var titleStrategies = []string{
	// Direct heading query.
	`() => document.querySelector('h1')?.innerText.trim() || ''`,
	// Heading scoped to the title-marked section.
	`() => {
		const sec = document.querySelector('[data-section-id="TITLE_DEFAULT"], [data-plugin-in-point-id="TITLE_DEFAULT"]');
		if (!sec) return '';
		const h = sec.querySelector('h1, h2');
		return h ? h.innerText.trim() : '';
	}`,
	// First heading with a plausible length.
	`() => {
		for (const h of document.querySelectorAll('h1, h2')) {
			const t = h.innerText.trim();
			if (t.length > 3) return t;
		}
		return '';
	}`,
}

// Title extracts the listing title, or "" when every strategy fails.
func Title(ctx context.Context, pg browser.Page) string {
	for _, js := range titleStrategies {
		if t := evalString(ctx, pg, js); t != "" {
			return t
		}
	}
	return ""
}
