package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNamesAndProfiles(t *testing.T) {
	s := newTestScraper(t)
	doc := mustDoc(t, listingHTML)

	assert.Equal(t, []string{"Олена Коваль", "Petro"}, s.ExtractNames(doc))

	urls := s.ExtractProfileURLs(doc)
	assert.Equal(t, []string{
		"https://www.google.com/maps/contrib/109876543210987654321/reviews?hl=uk",
		"https://www.google.com/maps/contrib/222333444/reviews",
	}, urls)

	imgs := s.ExtractProfileImages(doc)
	require.Len(t, imgs, 2)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/olena.png", *imgs[0])
}

func TestExtractProfileURLsSkipsEmptyHref(t *testing.T) {
	s := newTestScraper(t)
	doc := mustDoc(t, `<div class="TSUbDb"><a>no link</a></div><div class="TSUbDb"><a href="">empty</a></div><div class="TSUbDb"><a href="/maps/contrib/1/">ok</a></div>`)

	assert.Equal(t, []string{"/maps/contrib/1/"}, s.ExtractProfileURLs(doc))
	assert.Len(t, s.ExtractNames(doc), 3)
}

func TestExtractRatings(t *testing.T) {
	s := newTestScraper(t)

	assert.Equal(t, []float64{4.5, 5.0}, s.ExtractRatings(mustDoc(t, listingHTML)))

	doc := mustDoc(t, `
		<span class="lTi8oc z3HNkc" aria-label="Рейтинг 4,5 з 5"></span>
		<span class="lTi8oc z3HNkc" aria-label="Рейтинг 4,5 з 5"></span>
		<span class="lTi8oc z3HNkc" aria-label="П'ять зірок"></span>
		<span class="lTi8oc z3HNkc" aria-label="П'ять зірок"></span>
		<span class="lTi8oc z3HNkc"></span>
		<span class="lTi8oc z3HNkc"></span>
		<span class="lTi8oc z3HNkc" aria-label="Рейтинг 3,0 з 5"></span>`)
	assert.Equal(t, []float64{4.5, 3.0}, s.ExtractRatings(doc))
}

func TestExtractTextsRemovesDecorations(t *testing.T) {
	s := newTestScraper(t)
	doc := mustDoc(t, listingHTML)

	cleaned, err := s.Clean(doc)
	require.NoError(t, err)

	texts := s.ExtractTexts(cleaned)
	require.Len(t, texts, 4)
	assert.Equal(t, "Great place (Translated by Google)", *texts[0])
	assert.Equal(t, "Чудове місце", *texts[1])
	assert.Nil(t, texts[2])
	assert.Nil(t, texts[3])

	// исходный документ не тронут
	assert.Equal(t, 1, doc.Find("div.k8MTF").Length())
	assert.Equal(t, 0, cleaned.Find("div.k8MTF").Length())
}

func TestExtractReplies(t *testing.T) {
	s := newTestScraper(t)
	doc := mustDoc(t, listingHTML)

	replys := s.ExtractReplies(doc)
	require.Len(t, replys, 4)
	assert.Equal(t, "Thank you!", *replys[0])
	assert.Equal(t, "Дякуємо!", *replys[1])
	assert.Nil(t, replys[2])
	assert.Nil(t, replys[3])

	// после очистки в первом контейнере остаётся четыре кандидата
	cleaned, err := s.Clean(doc)
	require.NoError(t, err)
	assert.Equal(t, []*string{nil, nil, nil, nil}, s.ExtractReplies(cleaned.Document))
}

func TestExtractRepliesThreshold(t *testing.T) {
	s := newTestScraper(t)

	// при ровно четырёх кандидатах ответа нет
	doc := mustDoc(t, `<div jscontroller="fIQYlf">
		<span jscontroller="MZnM8e"><span class="d6SCIc">a</span></span>
		<span jscontroller="MZnM8e"><span class="d6SCIc">b</span></span>
		<span jscontroller="MZnM8e"></span>
		<span jscontroller="MZnM8e"></span>
	</div>`)
	assert.Equal(t, []*string{nil, nil}, s.ExtractReplies(doc))
}

func TestExtractIDs(t *testing.T) {
	s := newTestScraper(t)

	ids := s.ExtractIDs([]string{
		"https://www.google.com/maps/contrib/109876543210987654321/reviews?hl=uk",
		"https://www.google.com/maps/place/somewhere/",
		"https://www.google.com/maps/contrib/42/photos",
	})
	assert.Equal(t, []string{"109876543210987654321", "42"}, ids)
	assert.Empty(t, s.ExtractIDs(nil))
}

func TestExtractDates(t *testing.T) {
	s := newTestScraper(t)
	ref := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	dates, err := s.ExtractDates(mustDoc(t, listingHTML), ref)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, ref.AddDate(0, 0, -3), *dates[0])
	assert.Equal(t, ref.Add(-time.Hour), *dates[1])

	dates, err = s.ExtractDates(mustDoc(t, `<div class="jxjCjc"></div>`), ref)
	require.NoError(t, err)
	assert.Equal(t, []*time.Time{nil}, dates)

	_, err = s.ExtractDates(mustDoc(t, `<div class="jxjCjc"><span class="dehysf lTi8oc">вчора</span></div>`), ref)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "вчора", formatErr.Input)
}

func TestGetReviewsCountAndRating(t *testing.T) {
	s := newTestScraper(t)
	doc := mustDoc(t, listingHTML)

	count := s.GetReviewsCount(doc)
	require.NotNil(t, count)
	assert.Equal(t, 1234, *count)

	rating := s.GetRating(doc)
	require.NotNil(t, rating)
	assert.InDelta(t, 4.6, *rating, 1e-9)

	empty := mustDoc(t, `<div class="z5jxId">немає відгуків</div>`)
	assert.Nil(t, s.GetReviewsCount(empty))
	assert.Nil(t, s.GetRating(empty))
}
