// Package page defines the browser capability the extractors depend on:
// navigation, scoped element queries, explicit waits and text/attribute reads.
package page

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNavigation marks a failed page load. It is fatal for a run.
	ErrNavigation = errors.New("navigation failed")
	// ErrWaitTimeout marks an element that did not appear within the wait budget.
	ErrWaitTimeout = errors.New("wait timed out")
)

// WaitUntil is the document state Navigate blocks for.
type WaitUntil string

const (
	// DOMContentLoaded returns once the HTML is parsed, before subresources load.
	DOMContentLoaded WaitUntil = "domcontentloaded"
	Load             WaitUntil = "load"
)

// Querier finds elements. QueryOne returns (nil, nil) when nothing matches.
type Querier interface {
	QueryOne(selector string) (Element, error)
	QueryAll(selector string) ([]Element, error)
}

type Element interface {
	Querier
	// Text returns the rendered inner text, untrimmed.
	Text() (string, error)
	// Attribute returns nil when the attribute is not set.
	Attribute(name string) (*string, error)
}

// Driver is a single page. Queries run against the document loaded by the
// last Navigate.
type Driver interface {
	Querier
	Navigate(ctx context.Context, url string, until WaitUntil) error
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error)
}

// Session is a Driver that owns a browser (or equivalent) and must be closed.
type Session interface {
	Driver
	Close() error
}
