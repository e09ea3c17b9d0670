package scraper

import "time"

// Assemble собирает по одной записи на каждое имя.
// texts и replys идут парами: [2i] перевод, [2i+1] оригинал.
// Рассогласованные по длине массивы на реальных страницах нормальны, недостающие поля остаются nil.
func Assemble(
	names []string,
	texts []*string,
	replys []*string,
	ratings []float64,
	profileURLs []string,
	ids []string,
	profileImgs []*string,
	dates []*time.Time,
) []Review {
	reviews := make([]Review, 0, len(names))
	for i := range names {
		reviews = append(reviews, Review{
			ID:               valueAt(ids, i),
			Name:             valueAt(names, i),
			ProfileURL:       valueAt(profileURLs, i),
			Rating:           valueAt(ratings, i),
			Text:             ptrAt(texts, 2*i+1),
			TranslationText:  ptrAt(texts, 2*i),
			Reply:            ptrAt(replys, 2*i+1),
			TranslationReply: ptrAt(replys, 2*i),
			ProfileImg:       ptrAt(profileImgs, i),
			CreatedAt:        ptrAt(dates, i),
		})
	}
	return reviews
}

// valueAt: безопасный доступ по индексу, вне границ даёт nil
func valueAt[T any](s []T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	v := s[i]
	return &v
}

func ptrAt[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
