package browser

import (
	"context"
	"time"
)

// WaitCondition is a page-load wait condition used by navigation strategies.
type WaitCondition int

const (
	// WaitDOMStable resolves once the DOM stops mutating for a short window.
	// The weakest and fastest condition; preferred against a target that
	// streams analytics and never reaches network idle.
	WaitDOMStable WaitCondition = iota

	// WaitFullLoad resolves on the window load event.
	WaitFullLoad

	// WaitNetworkIdle resolves once in-flight requests settle.
	WaitNetworkIdle
)

func (c WaitCondition) String() string {
	switch c {
	case WaitDOMStable:
		return "dom-stable"
	case WaitFullLoad:
		return "full-load"
	case WaitNetworkIdle:
		return "network-idle"
	default:
		return "unknown"
	}
}

// Page is the minimal browser-tab surface the extraction core depends on.
// *Tab implements it over rod; tests implement it with canned responses.
// Every method is a suspension point and honors ctx cancellation.
type Page interface {
	// Navigate starts loading url without waiting for any load state.
	Navigate(ctx context.Context, url string) error

	// WaitLoadState blocks until cond resolves or timeout elapses.
	WaitLoadState(ctx context.Context, cond WaitCondition, timeout time.Duration) error

	// Eval runs a JS expression (an IIFE or arrow function) in the page and
	// decodes its JSON-serializable result into out. out may be nil.
	Eval(ctx context.Context, js string, out any) error

	// Click scrolls the first match of selector into view and clicks it.
	Click(ctx context.Context, selector string) error

	// PressKey sends a keyboard key by name ("ArrowRight", "Escape", "End").
	PressKey(ctx context.Context, key string) error

	// Scroll scrolls the page by deltaY pixels.
	Scroll(ctx context.Context, deltaY float64) error

	// WaitVisible blocks until selector matches a visible element.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// URL returns the page's current location.
	URL(ctx context.Context) (string, error)

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)
}
