package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/models"
)

// Strategy pairs a wait condition with its timeout and a fixed post-load
// settle delay. Strategies are tried in order until one resolves.
type Strategy struct {
	Name      string
	Condition WaitCondition
	Timeout   time.Duration
	Settle    time.Duration
}

// DefaultStrategies favors weaker, faster conditions first: the target
// streams analytics over long-lived connections and frequently never
// reaches network idle, so that condition is a late fallback only.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "dom-stable-60", Condition: WaitDOMStable, Timeout: 60 * time.Second, Settle: 3 * time.Second},
		{Name: "full-load-60", Condition: WaitFullLoad, Timeout: 60 * time.Second, Settle: 3 * time.Second},
		{Name: "network-idle-45", Condition: WaitNetworkIdle, Timeout: 45 * time.Second, Settle: 2 * time.Second},
		{Name: "dom-stable-90", Condition: WaitDOMStable, Timeout: 90 * time.Second, Settle: 5 * time.Second},
	}
}

// NavigateOptions tune a single navigation.
type NavigateOptions struct {
	// Marker is an optional selector expected on the loaded page. Its
	// absence never fails the navigation; it is logged only.
	Marker string
}

// Navigator drives multi-strategy page loads.
type Navigator struct {
	strategies []Strategy
	cfg        config.NavConfig
}

// NewNavigator builds a Navigator with the given config and the default
// strategy ladder.
func NewNavigator(cfg config.NavConfig) *Navigator {
	return &Navigator{strategies: DefaultStrategies(), cfg: cfg}
}

// NewNavigatorWithStrategies overrides the strategy ladder (tests, tuning).
func NewNavigatorWithStrategies(cfg config.NavConfig, strategies []Strategy) *Navigator {
	return &Navigator{strategies: strategies, cfg: cfg}
}

// Navigate loads url on pg, escalating through the strategy ladder. It
// returns the number of attempts made. A strategy succeeds once its wait
// condition resolves; the marker check afterwards is best-effort. When every
// strategy fails the returned error wraps the last underlying failure.
func (n *Navigator) Navigate(ctx context.Context, pg Page, url string, opts NavigateOptions) (int, error) {
	var lastErr error

	for i, strat := range n.strategies {
		if i > 0 {
			if err := Sleep(ctx, n.cfg.RetryBackoff); err != nil {
				return i, models.NewScrapeError(models.ErrCodeNavigation, "navigation canceled", err)
			}
		}
		attempt := i + 1

		if err := pg.Navigate(ctx, url); err != nil {
			lastErr = err
			slog.Warn("navigation request failed",
				"url", url, "strategy", strat.Name, "attempt", attempt, "error", err)
			continue
		}
		if err := pg.WaitLoadState(ctx, strat.Condition, strat.Timeout); err != nil {
			lastErr = err
			slog.Warn("load condition did not resolve",
				"url", url, "strategy", strat.Name, "attempt", attempt, "error", err)
			continue
		}
		if err := Sleep(ctx, strat.Settle); err != nil {
			return attempt, models.NewScrapeError(models.ErrCodeNavigation, "navigation canceled", err)
		}

		if opts.Marker != "" {
			if err := pg.WaitVisible(ctx, opts.Marker, n.cfg.MarkerTimeout); err != nil {
				slog.Debug("expected marker not found, proceeding anyway",
					"url", url, "marker", opts.Marker, "error", err)
			}
		}

		slog.Debug("navigation succeeded", "url", url, "strategy", strat.Name, "attempt", attempt)
		return attempt, nil
	}

	return len(n.strategies), models.NewScrapeError(
		models.ErrCodeNavigation,
		"all load strategies exhausted for "+url,
		lastErr,
	)
}
