// Package rodpage implements page.Session on a Chrome instance driven by go-rod.
package rodpage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"ekantipur-scraper/internal/config"
	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/page"
)

// Session owns one launched browser and the single tab used by both extractors.
type Session struct {
	launcher    *launcher.Launcher
	browser     *rod.Browser
	page        *rod.Page
	pageTimeout time.Duration
	logger      *observability.Logger
}

var _ page.Session = (*Session)(nil)

// Launch starts Chrome (visible unless cfg.Rod.Headless) and opens a blank tab.
func Launch(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Session, error) {
	logger = logger.With("component", "rodpage")

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Rod.Headless)
	if cfg.Rod.ChromePath != "" {
		l = l.Bin(cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	p, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			l.Kill()
		}
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	logger.Info("Browser launched",
		"headless", cfg.Rod.Headless,
		"chrome_path", cfg.Rod.ChromePath,
	)

	return &Session{
		launcher:    l,
		browser:     browser,
		page:        p,
		pageTimeout: cfg.GetPageTimeout(),
		logger:      logger,
	}, nil
}

func (s *Session) Navigate(ctx context.Context, url string, until page.WaitUntil) error {
	p := s.page.Context(ctx).Timeout(s.pageTimeout)
	defer p.CancelTimeout()

	wait := p.WaitNavigation(lifecycleEvent(until))
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %w", page.ErrNavigation, url, err)
	}
	wait()

	// wait() returns silently when the context ends first
	if err := p.GetContext().Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", page.ErrNavigation, url, err)
	}
	return nil
}

func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) (page.Element, error) {
	p := s.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	el, err := p.Element(selector)
	if err != nil {
		return nil, waitError(selector, timeout, err)
	}

	// detach the element from the wait deadline
	return &element{el: el.Context(s.page.GetContext())}, nil
}

func (s *Session) QueryOne(selector string) (page.Element, error) {
	return queryOne(s.page.Has, selector)
}

func (s *Session) QueryAll(selector string) ([]page.Element, error) {
	return queryAll(s.page.Elements, selector)
}

// Close shuts the browser down and removes its profile directory.
func (s *Session) Close() error {
	err := s.browser.Close()
	if err != nil {
		s.launcher.Kill()
	}
	s.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	s.logger.Debug("Browser closed")
	return nil
}

type element struct {
	el *rod.Element
}

func (e *element) Text() (string, error) {
	return e.el.Text()
}

func (e *element) Attribute(name string) (*string, error) {
	return e.el.Attribute(name)
}

func (e *element) QueryOne(selector string) (page.Element, error) {
	return queryOne(e.el.Has, selector)
}

func (e *element) QueryAll(selector string) ([]page.Element, error) {
	return queryAll(e.el.Elements, selector)
}

// queryOne adapts rod's Has, which does not wait for the selector to match.
func queryOne(has func(string) (bool, *rod.Element, error), selector string) (page.Element, error) {
	found, el, err := has(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if !found {
		return nil, nil
	}
	return &element{el: el}, nil
}

func queryAll(elements func(string) (rod.Elements, error), selector string) ([]page.Element, error) {
	els, err := elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query all %q: %w", selector, err)
	}
	out := make([]page.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out, nil
}

// waitError reports an expired wait deadline as page.ErrWaitTimeout. rod's
// Element retries until its context ends, so the deadline is the only way a
// wait for a missing selector can fail. Cancellation stays a plain error.
func waitError(selector string, timeout time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %q after %s: %w", page.ErrWaitTimeout, selector, timeout, err)
	}
	return fmt.Errorf("wait for %q: %w", selector, err)
}

func lifecycleEvent(until page.WaitUntil) proto.PageLifecycleEventName {
	if until == page.Load {
		return proto.PageLifecycleEventNameLoad
	}
	return proto.PageLifecycleEventNameDOMContentLoaded
}
