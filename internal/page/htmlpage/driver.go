// Package htmlpage implements page.Session over static HTML parsed with
// goquery. Documents come from a Source: the HTTP fetcher in production, or
// in-memory snapshots in tests. No JavaScript runs, so the document never
// changes after Navigate.
package htmlpage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ekantipur-scraper/internal/page"
)

// Source returns the HTML served at a URL.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Snapshots serves fixed HTML keyed by URL. Unknown URLs fail to load.
type Snapshots map[string]string

func (s Snapshots) Fetch(_ context.Context, url string) ([]byte, error) {
	html, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("no snapshot for %s", url)
	}
	return []byte(html), nil
}

// Driver holds the last document loaded by Navigate. It is not safe for
// concurrent use.
type Driver struct {
	source Source
	doc    *goquery.Document
}

var _ page.Session = (*Driver)(nil)

func New(source Source) *Driver {
	return &Driver{source: source}
}

// Navigate loads and parses the document. The wait condition is satisfied
// as soon as parsing finishes.
func (d *Driver) Navigate(ctx context.Context, url string, _ page.WaitUntil) error {
	body, err := d.source.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", page.ErrNavigation, url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: failed to parse HTML: %w", page.ErrNavigation, url, err)
	}

	d.doc = doc
	return nil
}

// WaitFor checks the selector once. A static document cannot render the
// element later, so a miss is reported as a timeout right away.
func (d *Driver) WaitFor(_ context.Context, selector string, timeout time.Duration) (page.Element, error) {
	el, err := d.QueryOne(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %q after %s", page.ErrWaitTimeout, selector, timeout)
	}
	return el, nil
}

func (d *Driver) QueryOne(selector string) (page.Element, error) {
	if d.doc == nil {
		return nil, fmt.Errorf("query %q: no document loaded", selector)
	}
	return first(d.doc.Selection, selector), nil
}

func (d *Driver) QueryAll(selector string) ([]page.Element, error) {
	if d.doc == nil {
		return nil, fmt.Errorf("query all %q: no document loaded", selector)
	}
	return all(d.doc.Selection, selector), nil
}

func (d *Driver) Close() error {
	d.doc = nil
	return nil
}

type element struct {
	sel *goquery.Selection
}

func (e *element) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e *element) Attribute(name string) (*string, error) {
	v, ok := e.sel.Attr(name)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (e *element) QueryOne(selector string) (page.Element, error) {
	return first(e.sel, selector), nil
}

func (e *element) QueryAll(selector string) ([]page.Element, error) {
	return all(e.sel, selector), nil
}

func first(scope *goquery.Selection, selector string) page.Element {
	sel := scope.Find(strings.TrimSpace(selector)).First()
	if sel.Length() == 0 {
		return nil
	}
	return &element{sel: sel}
}

func all(scope *goquery.Selection, selector string) []page.Element {
	found := scope.Find(strings.TrimSpace(selector))
	out := make([]page.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &element{sel: s})
	})
	return out
}
