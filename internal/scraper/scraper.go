package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Scraper struct {
	rules         Ruleset
	dateParser    *DateParser
	ratingRe      *regexp.Regexp
	contributorRe *regexp.Regexp
	tokenParamRe  *regexp.Regexp
}

func NewScraper(rules Ruleset, dateParser *DateParser) (*Scraper, error) {
	rules = rules.WithDefaults()

	ratingRe, err := regexp.Compile(rules.RatingPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rating_pattern: %w", err)
	}
	contributorRe, err := regexp.Compile(rules.ContributorPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid contributor_pattern: %w", err)
	}
	if contributorRe.NumSubexp() < 1 {
		return nil, fmt.Errorf("contributor_pattern must contain a capture group")
	}

	if dateParser == nil {
		dateParser = NewDateParser(ukVocabulary)
	}

	return &Scraper{
		rules:         rules,
		dateParser:    dateParser,
		ratingRe:      ratingRe,
		contributorRe: contributorRe,
		tokenParamRe:  regexp.MustCompile(`(` + regexp.QuoteMeta(rules.TokenParam) + `)[^,]*`),
	}, nil
}

func (s *Scraper) Rules() Ruleset {
	return s.rules
}

// ParseListing парсит одну страницу отзывов.
// Порядок фиксирован: имена читаются до очистки, остальные поля из очищенного документа.
func (s *Scraper) ParseListing(doc *goquery.Document, ref time.Time) ([]Review, error) {
	names := s.ExtractNames(doc)

	cleaned, err := s.Clean(doc)
	if err != nil {
		return nil, err
	}

	texts := s.ExtractTexts(cleaned)
	replys := s.ExtractReplies(cleaned.Document)
	ratings := s.ExtractRatings(cleaned.Document)
	profileURLs := s.ExtractProfileURLs(cleaned.Document)
	ids := s.ExtractIDs(profileURLs)
	profileImgs := s.ExtractProfileImages(cleaned.Document)

	dates, err := s.ExtractDates(cleaned.Document, ref)
	if err != nil {
		return nil, err
	}

	return Assemble(names, texts, replys, ratings, profileURLs, ids, profileImgs, dates), nil
}

// NextPageToken читает токен продолжения; пустой атрибут означает последнюю страницу
func (s *Scraper) NextPageToken(doc *goquery.Document) (string, bool) {
	token, exists := doc.Find(s.rules.TokenBlock).First().Attr(s.rules.TokenAttr)
	if !exists || token == "" {
		return "", false
	}
	return token, true
}

// NextPageURL подставляет токен в первое вхождение параметра seed URL
func (s *Scraper) NextPageURL(seedURL, token string) (string, bool) {
	loc := s.tokenParamRe.FindStringSubmatchIndex(seedURL)
	if loc == nil {
		return "", false
	}
	var b strings.Builder
	b.WriteString(seedURL[:loc[3]])
	b.WriteString(token)
	b.WriteString(seedURL[loc[1]:])
	return b.String(), true
}
