package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/stayharvest/stayharvest/browser"
)

const descSectionSel = `[data-section-id="DESCRIPTION_DEFAULT"], [data-plugin-in-point-id="DESCRIPTION_DEFAULT"]`

// Description extracts the full listing description. When a "show more"
// control exists it is clicked and the resulting modal's subsections are
// concatenated (heading + body). Any interaction failure falls back to the
// section's unexpanded visible text. The modal is closed afterwards so the
// page is usable by subsequent extractors.
func Description(ctx context.Context, pg browser.Page) string {
	visible := evalString(ctx, pg, `() => {
		const sec = document.querySelector(`+"`"+descSectionSel+"`"+`);
		return sec ? sec.innerText.trim() : '';
	}`)

	expanded, err := expandedDescription(ctx, pg)
	if err != nil {
		slog.Debug("description expansion failed, using visible text", "error", err)
		return visible
	}
	if expanded == "" {
		return visible
	}
	return expanded
}

func expandedDescription(ctx context.Context, pg browser.Page) (string, error) {
	// The button is clicked in-page: a tab-level Click on the section
	// selector list would hit the section element itself, not the button.
	clicked := evalBool(ctx, pg, `() => {
		const sec = document.querySelector(`+"`"+descSectionSel+"`"+`);
		if (!sec) return false;
		const btn = [...sec.querySelectorAll('button')].find(b => /show more/i.test(b.innerText));
		if (!btn) return false;
		btn.scrollIntoView({block: 'center'});
		btn.click();
		return true;
	}`)
	if !clicked {
		return "", nil
	}

	if err := pg.WaitVisible(ctx, `[data-testid="modal-container"]`, 10*time.Second); err != nil {
		return "", err
	}
	if err := browser.Sleep(ctx, time.Second); err != nil {
		return "", err
	}

	// Each modal subsection contributes heading+body, or body alone.
	parts := evalStrings(ctx, pg, `() => {
		const modal = document.querySelector('[data-testid="modal-container"]');
		if (!modal) return [];
		const out = [];
		const sections = modal.querySelectorAll('section, div[data-section-id]');
		const blocks = sections.length ? sections : [modal];
		for (const sec of blocks) {
			const h = sec.querySelector('h1, h2, h3');
			const body = sec.innerText.trim();
			if (!body) continue;
			if (h && h.innerText.trim() && !body.startsWith(h.innerText.trim())) {
				out.push(h.innerText.trim() + '\n' + body);
			} else {
				out.push(body);
			}
		}
		return out;
	}`)

	// Close the modal regardless of what we got.
	if err := pg.PressKey(ctx, "Escape"); err != nil {
		slog.Debug("closing description modal failed", "error", err)
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}
