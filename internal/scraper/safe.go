package scraper

import (
	"ekantipur-scraper/internal/page"
)

// Safe runs fn on el and turns a missing element or any failure into nil.
func Safe[T any](el page.Element, fn func(page.Element) (T, error)) *T {
	if el == nil {
		return nil
	}
	v, err := fn(el)
	if err != nil {
		return nil
	}
	return &v
}

// find looks up selector inside scope; lookup errors count as "not found".
func find(scope page.Querier, selector string) page.Element {
	if scope == nil {
		return nil
	}
	el, err := scope.QueryOne(selector)
	if err != nil {
		return nil
	}
	return el
}

// text returns the element's cleaned inner text, or nil.
func (s *Scraper) text(el page.Element) *string {
	return Safe(el, func(e page.Element) (string, error) {
		raw, err := e.Text()
		if err != nil {
			return "", err
		}
		return s.normalizer.Text(raw), nil
	})
}

// attr returns the attribute value, or nil when the element or attribute is missing.
func attr(el page.Element, name string) *string {
	v := Safe(el, func(e page.Element) (*string, error) {
		return e.Attribute(name)
	})
	if v == nil {
		return nil
	}
	return *v
}
