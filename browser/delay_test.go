package browser

import (
	"context"
	"testing"
	"time"
)

func TestNewDelayPolicy_InvertedRangeFixed(t *testing.T) {
	p := NewDelayPolicy(3000, 1000)
	if p.Max < p.Min {
		t.Errorf("inverted range not fixed: min=%v max=%v", p.Min, p.Max)
	}
}

func TestDelayPolicy_SleepWithinBounds(t *testing.T) {
	p := NewDelayPolicy(1, 5)
	start := time.Now()
	if err := p.Sleep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("sleep took %v, far over the 5ms bound", elapsed)
	}
}

func TestSleep_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Minute); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSleep_ZeroDuration(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("zero duration should return immediately: %v", err)
	}
}
