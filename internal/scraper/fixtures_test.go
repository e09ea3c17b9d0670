package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// Две записи: первая с переводом текста, вторая без текста и без ответа.
// В первом контейнере ответа пять кандидатов, один из них внутри декоративного узла:
// после очистки их четыре, и ответ не считается найденным.
// Нечётные узлы рейтинга несут заведомо неверную метку.
const listingHTML = `<html><body>
<div class="z5jxId">1 234 відгуки</div>
<span class="Aq14fc">4,6</span>
<div class="gws-localreviews__general-reviews-block" data-next-page-token="CAESBkVnSUlDZw">
  <div jscontroller="fIQYlf">
    <div class="jxjCjc">
      <div class="TSUbDb"><a href="https://www.google.com/maps/contrib/109876543210987654321/reviews?hl=uk">Олена   Коваль</a></div>
      <img class="lDY1rd" src="https://lh3.googleusercontent.com/a/olena.png">
      <span class="lTi8oc z3HNkc" aria-label="Рейтинг 4,5 з 5"></span>
      <span class="lTi8oc z3HNkc" aria-label="Рейтинг 9,9 з 5"></span>
      <span class="dehysf lTi8oc">3 дні тому</span>
      <div class="k8MTF"><span jscontroller="MZnM8e"><span data-expandable-section>Місцевий гід</span></span></div>
      <span jscontroller="MZnM8e"><span data-expandable-section>Great place (Translated by Google)</span></span>
      <span jscontroller="MZnM8e"><span data-expandable-section>Чудове місце</span></span>
    </div>
    <span jscontroller="MZnM8e"><span class="d6SCIc">Thank you!</span></span>
    <span jscontroller="MZnM8e"><span class="d6SCIc">Дякуємо!</span></span>
  </div>
  <div jscontroller="fIQYlf">
    <div class="jxjCjc">
      <div class="TSUbDb"><a href="https://www.google.com/maps/contrib/222333444/reviews">Petro</a></div>
      <img class="lDY1rd" src="https://lh3.googleusercontent.com/a/petro.png">
      <span class="lTi8oc z3HNkc" aria-label="Рейтинг 5,0 з 5"></span>
      <span class="lTi8oc z3HNkc" aria-label="Рейтинг 9,9 з 5"></span>
      <span class="dehysf lTi8oc">годину тому</span>
    </div>
  </div>
</div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newTestScraper(t *testing.T) *Scraper {
	t.Helper()
	s, err := NewScraper(DefaultRuleset(), nil)
	require.NoError(t, err)
	return s
}

func str(v string) *string {
	return &v
}
