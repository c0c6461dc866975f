package scraper

// ArticleRecord is one entertainment listing card. Field order is the JSON output order.
type ArticleRecord struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	Category string  `json:"category"`
	Author   *string `json:"author"`
}

// CartoonRecord is the cartoon of the day. Title comes from the image alt
// text, ImageURL is the unwrapped full-size image.
type CartoonRecord struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	Author   *string `json:"author"`
}

// ResultBundle is everything one run produces.
type ResultBundle struct {
	EntertainmentNews []ArticleRecord `json:"entertainment_news"`
	CartoonOfTheDay   *CartoonRecord  `json:"cartoon_of_the_day"`
}

// NewResultBundle returns a bundle whose news list encodes as [] rather than null.
func NewResultBundle(news []ArticleRecord, cartoon *CartoonRecord) *ResultBundle {
	if news == nil {
		news = []ArticleRecord{}
	}
	return &ResultBundle{
		EntertainmentNews: news,
		CartoonOfTheDay:   cartoon,
	}
}
