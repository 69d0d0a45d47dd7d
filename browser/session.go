package browser

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/models"
)

// Manager tracks live sessions for health reporting and process supervision.
// It is safe for concurrent use.
type Manager struct {
	cfg            config.BrowserConfig
	activeSessions atomic.Int32
	activeTabs     atomic.Int32
}

// NewManager creates a session manager. No browser is launched until Acquire.
func NewManager(cfg config.BrowserConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Stats returns a snapshot for the health endpoint and the external
// process-supervision facility.
func (m *Manager) Stats() models.SessionStats {
	return models.SessionStats{
		ActiveSessions: int(m.activeSessions.Load()),
		ActiveTabs:     int(m.activeTabs.Load()),
	}
}

// Session owns one browser process and its isolated browsing context.
// One session per logical job; Close is idempotent and must run on every
// exit path (callers defer it immediately after Acquire).
type Session struct {
	manager    *Manager
	browser    *rod.Browser
	closed     atomic.Bool
	lastActive atomic.Int64 // unix nanos
	watchStop  chan struct{}
}

// Acquire launches a stealth-configured browser and returns its session.
// Launch failure is fatal to the enclosing job and is not retried here.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	l := launcher.New().
		Headless(m.cfg.Headless).
		NoSandbox(m.cfg.NoSandbox)

	if m.cfg.BrowserBin != "" {
		l = l.Bin(m.cfg.BrowserBin)
	}

	// Anti-automation launch profile. Dropping the automation-controlled
	// signaling is the load-bearing part; the rest keeps the renderer from
	// throttling background tabs during long scroll sequences.
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}
	slog.Info("browser session launched", "controlURL", controlURL)

	s := &Session{
		manager:   m,
		browser:   browser,
		watchStop: make(chan struct{}),
	}
	s.touch()
	m.activeSessions.Add(1)

	if m.cfg.IdleTimeout > 0 {
		go s.idleWatchdog(m.cfg.IdleTimeout)
	}
	return s, nil
}

// Close tears the browser process down. Safe to call more than once and
// from any goroutine.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.watchStop)
	if err := s.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
	s.manager.activeSessions.Add(-1)
	slog.Info("browser session closed")
}

// Closed reports whether the session has been torn down (possibly by the
// idle watchdog).
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// idleWatchdog reclaims the browser process when no tab has been active for
// the configured period. Bounded lifetime independent of request completion.
func (s *Session) idleWatchdog(timeout time.Duration) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.watchStop:
			return
		case <-ticker.C:
			if s.manager.activeTabs.Load() > 0 {
				continue
			}
			idle := time.Since(time.Unix(0, s.lastActive.Load()))
			if idle >= timeout {
				slog.Warn("idle watchdog closing browser session", "idle", idle)
				s.Close()
				return
			}
		}
	}
}
