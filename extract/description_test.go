package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stayharvest/stayharvest/browser"
)

// descFakePage scripts the description flow. Eval dispatch is by result
// type: *bool is the expand step, *[]string the modal read, *string the
// visible-text read.
type descFakePage struct {
	visible    string
	expandable bool
	modalParts []string

	clicks      []string
	waitVisible []string
}

func (f *descFakePage) Navigate(ctx context.Context, url string) error { return nil }
func (f *descFakePage) WaitLoadState(ctx context.Context, cond browser.WaitCondition, timeout time.Duration) error {
	return nil
}

func (f *descFakePage) Eval(ctx context.Context, js string, out any) error {
	switch v := out.(type) {
	case *bool:
		*v = f.expandable
	case *[]string:
		*v = f.modalParts
	case *string:
		*v = f.visible
	}
	return nil
}

func (f *descFakePage) Click(ctx context.Context, selector string) error {
	f.clicks = append(f.clicks, selector)
	return nil
}

func (f *descFakePage) PressKey(ctx context.Context, key string) error { return nil }
func (f *descFakePage) Scroll(ctx context.Context, deltaY float64) error {
	return nil
}

func (f *descFakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	f.waitVisible = append(f.waitVisible, selector)
	return nil
}

func (f *descFakePage) URL(ctx context.Context) (string, error)  { return "", nil }
func (f *descFakePage) HTML(ctx context.Context) (string, error) { return "", nil }

func TestDescription_ExpandsViaInPageClick(t *testing.T) {
	pg := &descFakePage{
		visible:    "A bright loft in the old town. Show more",
		expandable: true,
		modalParts: []string{"About this space\nA bright loft in the old town.", "The space\nTwo bedrooms and a terrace."},
	}

	got := Description(context.Background(), pg)

	want := "About this space\nA bright loft in the old town.\n\nThe space\nTwo bedrooms and a terrace."
	if got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
	// Expansion happens inside the eval that found the button. A tab-level
	// click on the section selector would land on the section element, not
	// the button, and the modal would never open.
	if len(pg.clicks) != 0 {
		t.Errorf("unexpected tab-level clicks %q", pg.clicks)
	}
	if len(pg.waitVisible) != 1 || !strings.Contains(pg.waitVisible[0], "modal-container") {
		t.Errorf("expected one modal wait, got %q", pg.waitVisible)
	}
}

func TestDescription_NoExpandControl(t *testing.T) {
	pg := &descFakePage{visible: "Compact studio near the station.", expandable: false}

	got := Description(context.Background(), pg)

	if got != "Compact studio near the station." {
		t.Errorf("Description = %q, want visible text", got)
	}
	if len(pg.waitVisible) != 0 {
		t.Errorf("no modal should be awaited, got %q", pg.waitVisible)
	}
}
