package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"ekantipur-scraper/internal/config"
)

var spaceRun = regexp.MustCompile(`\s+`)

type Normalizer struct {
	cfg config.NormalizeConfig
}

func NewNormalizer(cfg config.NormalizeConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Text trims surrounding whitespace. NBSP replacement and space collapsing
// are applied only when enabled in config.
func (n *Normalizer) Text(raw string) string {
	text := raw

	if n.cfg.TrimNBSP {
		text = strings.ReplaceAll(text, "\u00A0", " ")
	}

	if n.cfg.CollapseSpaces {
		text = spaceRun.ReplaceAllString(text, " ")
	}

	return strings.TrimSpace(text)
}

const srcMarker = "src="

// DirectImageURL unwraps a thumbnail proxy URL such as
// https://img.example/thumb.php?src=https://cdn.example/full.jpg&w=200
// into the image it points at. URLs without a src= marker are returned as is.
//
// The value of the first src query parameter is returned exactly as it
// appears in the URL, up to the next '&' or the end of the query. Percent
// escapes and '+' are left alone: the value is already a URL.
func DirectImageURL(thumbnail string) string {
	if !strings.Contains(thumbnail, srcMarker) {
		return thumbnail
	}

	if u, err := url.Parse(thumbnail); err == nil {
		if value, ok := rawQueryValue(u.RawQuery, "src"); ok {
			return value
		}
	}

	// "imgsrc=", a marker in the path or fragment, or an unparseable URL
	_, after, _ := strings.Cut(thumbnail, srcMarker)
	value, _, _ := strings.Cut(after, "&")
	return value
}

// rawQueryValue finds the first pair in rawQuery whose decoded key is name and
// returns its value undecoded.
func rawQueryValue(rawQuery, name string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if key == name {
			return value, true
		}
	}
	return "", false
}
