package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekantipur-scraper/internal/config"
	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/page"
	"ekantipur-scraper/internal/page/htmlpage"
)

const (
	entertainmentURL = "https://ekantipur.com/entertainment"
	cartoonURL       = "https://ekantipur.com/cartoon"
)

func newTestScraper() *Scraper {
	return NewScraper(config.Default(), observability.Nop())
}

func card(i int) string {
	return fmt.Sprintf(`<article class="normal">
  <div class="image"><img src="https://cdn.example/%d.jpg"></div>
  <h2>
    Title %d
  </h2>
  <div class="author"> Author %d </div>
</article>`, i, i, i)
}

func listingPage(cards ...string) string {
	return "<html><body><main>" + strings.Join(cards, "\n") + "</main></body></html>"
}

func cartoonPage(thumbnail string) string {
	return `<html><body>
<section class="cartoon-wrapper">
  <figure class="popup-image"><img src="` + thumbnail + `" alt="आजको कार्टुन"></figure>
  <div class="cartoon-author"> अविन </div>
</section>
</body></html>`
}

func TestScrapeEntertainmentLimitsAndKeepsOrder(t *testing.T) {
	var cards []string
	for i := 1; i <= 8; i++ {
		cards = append(cards, card(i))
	}
	d := htmlpage.New(htmlpage.Snapshots{entertainmentURL: listingPage(cards...)})

	records, err := newTestScraper().ScrapeEntertainment(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, records, 5)

	for i, rec := range records {
		n := i + 1
		require.NotNil(t, rec.Title)
		assert.Equal(t, fmt.Sprintf("Title %d", n), *rec.Title)
		require.NotNil(t, rec.Author)
		assert.Equal(t, fmt.Sprintf("Author %d", n), *rec.Author)
		require.NotNil(t, rec.ImageURL)
		assert.Equal(t, fmt.Sprintf("https://cdn.example/%d.jpg", n), *rec.ImageURL)
		assert.Equal(t, "मनोरञ्जन", rec.Category)
	}
}

func TestScrapeEntertainmentFewerCards(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{entertainmentURL: listingPage(card(1), card(2))})

	records, err := newTestScraper().ScrapeEntertainment(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestScrapeEntertainmentNoCards(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{entertainmentURL: listingPage()})

	records, err := newTestScraper().ScrapeEntertainment(context.Background(), d)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestScrapeEntertainmentMissingFieldsKeepRecord(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{entertainmentURL: listingPage(
		`<article class="normal"><div class="author">Only Author</div></article>`,
		`<article class="normal"></article>`,
		card(3),
	)})

	records, err := newTestScraper().ScrapeEntertainment(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Nil(t, records[0].Title)
	assert.Nil(t, records[0].ImageURL)
	require.NotNil(t, records[0].Author)
	assert.Equal(t, "Only Author", *records[0].Author)

	assert.Equal(t, ArticleRecord{Category: "मनोरञ्जन"}, records[1])

	require.NotNil(t, records[2].Title)
	assert.Equal(t, "Title 3", *records[2].Title)
}

func TestScrapeEntertainmentNavigationFailure(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{})

	_, err := newTestScraper().ScrapeEntertainment(context.Background(), d)
	assert.ErrorIs(t, err, page.ErrNavigation)
}

func TestScrapeCartoonUnwrapsThumbnail(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{
		cartoonURL: cartoonPage("https://img.example/thumb.php?src=https://cdn.example/full.jpg&amp;w=200"),
	})

	rec, err := newTestScraper().ScrapeCartoon(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.NotNil(t, rec.ImageURL)
	assert.Equal(t, "https://cdn.example/full.jpg", *rec.ImageURL)
	require.NotNil(t, rec.Title)
	assert.Equal(t, "आजको कार्टुन", *rec.Title)
	require.NotNil(t, rec.Author)
	assert.Equal(t, "अविन", *rec.Author)
}

func TestScrapeCartoonDirectURL(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{cartoonURL: cartoonPage("https://cdn.example/direct.jpg")})

	rec, err := newTestScraper().ScrapeCartoon(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.ImageURL)
	assert.Equal(t, "https://cdn.example/direct.jpg", *rec.ImageURL)
}

func TestScrapeCartoonWaitTimeout(t *testing.T) {
	d := htmlpage.New(htmlpage.Snapshots{cartoonURL: `<html><body><section class="cartoon-wrapper"></section></body></html>`})

	rec, err := newTestScraper().ScrapeCartoon(context.Background(), d)
	assert.ErrorIs(t, err, page.ErrWaitTimeout)
	assert.Nil(t, rec)
}

func TestScrapeCartoonSectionAbsent(t *testing.T) {
	d := &fakeDriver{
		waitFound: true,
		one:       map[string]page.Element{},
	}

	rec, err := newTestScraper().ScrapeCartoon(context.Background(), d)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 30*time.Second, d.waitTimeout)
}

func TestScrapeCartoonFieldErrorsDegradeToNil(t *testing.T) {
	broken := &fakeElement{err: errors.New("node detached")}
	section := &fakeElement{children: map[string]page.Element{
		"figure.popup-image img": broken,
		".cartoon-author":        broken,
	}}
	d := &fakeDriver{
		waitFound: true,
		one:       map[string]page.Element{"section.cartoon-wrapper": section},
	}

	rec, err := newTestScraper().ScrapeCartoon(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, &CartoonRecord{}, rec)
}

func TestSafe(t *testing.T) {
	assert.Nil(t, Safe(nil, func(page.Element) (string, error) { return "x", nil }))

	el := &fakeElement{}
	assert.Nil(t, Safe[string](el, func(page.Element) (string, error) { return "", errors.New("stale") }))

	v := Safe(el, func(page.Element) (int, error) { return 7, nil })
	require.NotNil(t, v)
	assert.Equal(t, 7, *v)
}

func TestAttrAndText(t *testing.T) {
	s := newTestScraper()
	src := "https://cdn.example/a.jpg"
	el := &fakeElement{text: "  padded  ", attrs: map[string]string{"src": src}}

	require.NotNil(t, attr(el, "src"))
	assert.Equal(t, src, *attr(el, "src"))
	assert.Nil(t, attr(el, "alt"))
	assert.Nil(t, attr(nil, "src"))

	require.NotNil(t, s.text(el))
	assert.Equal(t, "padded", *s.text(el))
	assert.Nil(t, s.text(nil))
	assert.Nil(t, s.text(&fakeElement{err: errors.New("timeout")}))
}

func TestFindSwallowsQueryErrors(t *testing.T) {
	assert.Nil(t, find(&fakeElement{err: errors.New("boom")}, "h2"))
	assert.Nil(t, find(nil, "h2"))
}

type fakeDriver struct {
	waitFound   bool
	waitTimeout time.Duration
	one         map[string]page.Element
}

func (f *fakeDriver) Navigate(context.Context, string, page.WaitUntil) error { return nil }

func (f *fakeDriver) WaitFor(_ context.Context, selector string, timeout time.Duration) (page.Element, error) {
	f.waitTimeout = timeout
	if !f.waitFound {
		return nil, page.ErrWaitTimeout
	}
	return &fakeElement{}, nil
}

func (f *fakeDriver) QueryOne(selector string) (page.Element, error) {
	if el, ok := f.one[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (f *fakeDriver) QueryAll(string) ([]page.Element, error) { return nil, nil }

type fakeElement struct {
	text     string
	attrs    map[string]string
	children map[string]page.Element
	err      error
}

func (f *fakeElement) Text() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeElement) Attribute(name string) (*string, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.attrs[name]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeElement) QueryOne(selector string) (page.Element, error) {
	if f.err != nil {
		return nil, f.err
	}
	if el, ok := f.children[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (f *fakeElement) QueryAll(string) ([]page.Element, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}
