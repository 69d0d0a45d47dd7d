package crawl

import (
	"sync"
	"testing"

	"github.com/stayharvest/stayharvest/models"
)

func TestCollector_DedupFirstSeenWins(t *testing.T) {
	c := NewCollector(0)
	if !c.Add(models.ListingSummary{ListingID: "1", Title: "first"}) {
		t.Fatal("first add should be kept")
	}
	if c.Add(models.ListingSummary{ListingID: "1", Title: "second"}) {
		t.Fatal("duplicate id should be rejected")
	}
	got := c.Listings()
	if len(got) != 1 || got[0].Title != "first" {
		t.Errorf("listings = %+v, want single first-seen entry", got)
	}
}

func TestCollector_Cap(t *testing.T) {
	c := NewCollector(2)
	c.Add(models.ListingSummary{ListingID: "1"})
	c.Add(models.ListingSummary{ListingID: "2"})
	if c.Add(models.ListingSummary{ListingID: "3"}) {
		t.Error("add over cap should be rejected")
	}
	if !c.Full() {
		t.Error("collector should report full")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
}

func TestCollector_EmptyIDRejected(t *testing.T) {
	c := NewCollector(0)
	if c.Add(models.ListingSummary{}) {
		t.Error("empty id should be rejected")
	}
}

func TestCollector_ConcurrentAdds(t *testing.T) {
	c := NewCollector(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Same id from every goroutine: exactly one must win.
			c.Add(models.ListingSummary{ListingID: "42"})
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}
