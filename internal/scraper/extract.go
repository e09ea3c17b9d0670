package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractNames: текст ссылок с именами авторов, в порядке документа
func (s *Scraper) ExtractNames(doc *goquery.Document) []string {
	var names []string
	doc.Find(s.rules.ReviewerAnchor).Each(func(_ int, sel *goquery.Selection) {
		names = append(names, nodeText(sel))
	})
	return names
}

// ExtractProfileURLs: href тех же ссылок; пустые пропускаются
func (s *Scraper) ExtractProfileURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find(s.rules.ProfileAnchor).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			urls = append(urls, href)
		}
	})
	return urls
}

func (s *Scraper) ExtractProfileImages(doc *goquery.Document) []*string {
	var imgs []*string
	doc.Find(s.rules.Avatar).Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok {
			imgs = append(imgs, &src)
			return
		}
		imgs = append(imgs, nil)
	})
	return imgs
}

// ExtractRatings читает только чётные узлы рейтинга: нечётные дублируют их для скринридеров
func (s *Scraper) ExtractRatings(doc *goquery.Document) []float64 {
	var ratings []float64
	doc.Find(s.rules.RatingNode).Each(func(i int, sel *goquery.Selection) {
		if i%2 != 0 {
			return
		}
		label, ok := sel.Attr(s.rules.RatingLabelAttr)
		if !ok || label == "" {
			return
		}
		if rating, ok := s.parseRating(label); ok {
			ratings = append(ratings, rating)
		}
	})
	return ratings
}

func (s *Scraper) parseRating(label string) (float64, bool) {
	match := s.ratingRe.FindString(label)
	if match == "" {
		return 0, false
	}
	match = strings.Join(strings.Fields(match), "")
	rating, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// ExtractTexts возвращает пары (перевод, оригинал) на каждый блок отзыва.
// Блок без текста даёт два nil.
func (s *Scraper) ExtractTexts(doc *CleanDocument) []*string {
	var texts []*string
	doc.Find(s.rules.ReviewBlock).Each(func(_ int, block *goquery.Selection) {
		sections := block.Find(s.rules.ExpandableText)
		if sections.Length() == 0 {
			texts = append(texts, nil, nil)
			return
		}
		sections.Each(func(_ int, sel *goquery.Selection) {
			text := nodeText(sel)
			texts = append(texts, &text)
		})
	})
	return texts
}

// ExtractReplies: ответ владельца с переводом есть, только если кандидатов больше порога
func (s *Scraper) ExtractReplies(doc *goquery.Document) []*string {
	var replys []*string
	doc.Find(s.rules.ReplyBlock).Each(func(_ int, block *goquery.Selection) {
		if block.Find(s.rules.ReplyCandidate).Length() <= s.rules.ReplyMinCandidates {
			replys = append(replys, nil, nil)
			return
		}
		block.Find(s.rules.ReplyText).Each(func(_ int, sel *goquery.Selection) {
			text := nodeText(sel)
			replys = append(replys, &text)
		})
	})
	return replys
}

// ExtractIDs достаёт числовой id автора из URL профиля; URL без совпадения пропускается
func (s *Scraper) ExtractIDs(profileURLs []string) []string {
	var ids []string
	for _, u := range profileURLs {
		if m := s.contributorRe.FindStringSubmatch(u); len(m) > 1 && m[1] != "" {
			ids = append(ids, m[1])
		}
	}
	return ids
}

// ExtractDates нормализует дату каждого блока отзыва относительно ref.
// Блок без узла даты даёт nil, нераспознанная фраза даёт FormatError.
func (s *Scraper) ExtractDates(doc *goquery.Document, ref time.Time) ([]*time.Time, error) {
	var dates []*time.Time
	var parseErr error
	doc.Find(s.rules.ReviewBlock).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		node := block.Find(s.rules.DateNode).First()
		if node.Length() == 0 {
			dates = append(dates, nil)
			return true
		}
		date, err := s.dateParser.Parse(nodeText(node), ref)
		if err != nil {
			parseErr = err
			return false
		}
		dates = append(dates, &date)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return dates, nil
}

// GetReviewsCount разбирает локализованную строку "1 234 відгуки"
func (s *Scraper) GetReviewsCount(doc *goquery.Document) *int {
	node := doc.Find(s.rules.CountNode).First()
	if node.Length() == 0 {
		return nil
	}
	compact := strings.Join(strings.Fields(node.Text()), "")
	match := digitsRe.FindString(compact)
	if match == "" {
		return nil
	}
	count, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &count
}

// GetRating: общий рейтинг места, "4,6" -> 4.6
func (s *Scraper) GetRating(doc *goquery.Document) *float64 {
	node := doc.Find(s.rules.OverallRating).First()
	if node.Length() == 0 {
		return nil
	}
	raw := strings.Replace(strings.TrimSpace(node.Text()), ",", ".", 1)
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &rating
}

func nodeText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
