package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/stayharvest/stayharvest/models"
)

// Tab is one browser tab bound to a session. It implements Page.
// A tab must not be shared across concurrent requests.
type Tab struct {
	session *Session
	page    *rod.Page
}

// NewTab opens a fresh tab with the stealth surface patched before any
// target script runs: stealth JS bundle, explicit navigator.webdriver
// override, fixed viewport, fixed user-agent and language headers.
func (s *Session) NewTab(ctx context.Context) (*Tab, error) {
	if s.Closed() {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "session already closed", nil)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to open tab", err)
	}

	// Both injections are registered before the first Navigate so they win
	// the race against the target's own detection scripts.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "stealth injection failed", err)
	}
	if _, err := page.EvalOnNewDocument(
		`Object.defineProperty(navigator, 'webdriver', { get: () => false });`,
	); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "webdriver override failed", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.manager.cfg.ViewportWidth,
		Height:            s.manager.cfg.ViewportHeight,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "viewport override failed", err)
	}

	_ = proto.NetworkSetUserAgentOverride{
		UserAgent:      s.manager.cfg.UserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}.Call(page)
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		}),
	}.Call(page)

	s.manager.activeTabs.Add(1)
	s.touch()
	return &Tab{session: s, page: page}, nil
}

// Close releases the tab. Navigating to about:blank first drops the page's
// DOM so a lingering renderer cannot hold listing assets in memory.
func (t *Tab) Close() {
	if err := t.page.Navigate("about:blank"); err == nil {
		_ = t.page.WaitLoad()
	}
	_ = t.page.Close()
	t.session.manager.activeTabs.Add(-1)
	t.session.touch()
}

// Navigate implements Page.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	t.session.touch()
	return t.page.Context(ctx).Navigate(url)
}

// WaitLoadState implements Page.
func (t *Tab) WaitLoadState(ctx context.Context, cond WaitCondition, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	p := t.page.Context(tctx)

	switch cond {
	case WaitDOMStable:
		return p.WaitDOMStable(300*time.Millisecond, 0.1)
	case WaitFullLoad:
		return p.WaitLoad()
	case WaitNetworkIdle:
		wait := p.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
		wait()
		return tctx.Err()
	default:
		return fmt.Errorf("unknown wait condition %d", cond)
	}
}

// Eval implements Page. The JS result is round-tripped through its JSON
// value so extractors can decode straight into their own structs.
func (t *Tab) Eval(ctx context.Context, js string, out any) error {
	t.session.touch()
	res, err := t.page.Context(ctx).Eval(js)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(res.Value.Val())
	if err != nil {
		return fmt.Errorf("encode eval result: %w", err)
	}
	return json.Unmarshal(raw, out)
}

// Click implements Page.
func (t *Tab) Click(ctx context.Context, selector string) error {
	t.session.touch()
	el, err := t.page.Context(ctx).Element(selector)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", selector, err)
	}
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll %q into view: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// PressKey implements Page.
func (t *Tab) PressKey(ctx context.Context, key string) error {
	t.session.touch()
	k, ok := keyByName[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	return t.page.Context(ctx).Keyboard.Press(k)
}

var keyByName = map[string]input.Key{
	"ArrowRight": input.ArrowRight,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowDown":  input.ArrowDown,
	"End":        input.End,
	"Enter":      input.Enter,
	"Escape":     input.Escape,
}

// Scroll implements Page.
func (t *Tab) Scroll(ctx context.Context, deltaY float64) error {
	t.session.touch()
	return t.page.Context(ctx).Mouse.Scroll(0, deltaY, 0)
}

// WaitVisible implements Page.
func (t *Tab) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	el, err := t.page.Context(tctx).Element(selector)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

// URL implements Page.
func (t *Tab) URL(ctx context.Context) (string, error) {
	var u string
	if err := t.Eval(ctx, `() => window.location.href`, &u); err != nil {
		return "", err
	}
	return u, nil
}

// HTML implements Page.
func (t *Tab) HTML(ctx context.Context) (string, error) {
	t.session.touch()
	return t.page.Context(ctx).HTML()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
