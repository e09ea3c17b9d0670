package normalize

import (
	"regexp"
	"strings"

	"placereviews-parser/internal/config"
	"placereviews-parser/internal/scraper"
)

var spacesRe = regexp.MustCompile(`\s+`)

type Normalizer struct {
	cfg *config.Config
}

func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Review чистит текстовые поля отзыва; nil остаётся nil
func (n *Normalizer) Review(r scraper.Review) scraper.Review {
	r.Text = n.cleanPtr(r.Text)
	r.TranslationText = n.cleanPtr(r.TranslationText)
	r.Reply = n.cleanPtr(r.Reply)
	r.TranslationReply = n.cleanPtr(r.TranslationReply)
	r.Name = n.cleanPtr(r.Name)
	return r
}

func (n *Normalizer) cleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := n.CleanText(*s)
	return &cleaned
}

func (n *Normalizer) CleanText(text string) string {
	if n.cfg.Normalize.TrimNBSP {
		// Заменяем NBSP (\u00A0) на обычный пробел
		text = strings.ReplaceAll(text, "\u00A0", " ")
	}

	if n.cfg.Normalize.CollapseSpaces {
		text = spacesRe.ReplaceAllString(text, " ")
	}

	return strings.TrimSpace(text)
}

// TruncatePreview обрезает текст до maxPreviewChars символов по границе слова
func (n *Normalizer) TruncatePreview(text string) string {
	limit := n.cfg.Normalize.MaxPreviewChars
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	truncated := string(runes[:limit-1])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > 0 {
		return truncated[:lastSpace] + "…"
	}

	return truncated + "…"
}

// NormalizeURL убирает пробелы и якорь
func NormalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if idx := strings.Index(urlStr, "#"); idx > -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}
