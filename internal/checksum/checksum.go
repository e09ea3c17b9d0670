package checksum

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"placereviews-parser/internal/scraper"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateContentHash генерирует SHA256 хеш содержимого отзыва
// Формула: SHA256(id|name|rating|text|translation_text|reply|translation_reply)
// Дата не входит: она вычисляется от момента обхода и сдвигается при неизменной странице.
func (g *Generator) GenerateContentHash(r scraper.Review) string {
	rating := ""
	if r.Rating != nil {
		rating = fmt.Sprintf("%.1f", *r.Rating)
	}

	content := strings.Join([]string{
		deref(r.ID),
		deref(r.Name),
		rating,
		deref(r.Text),
		deref(r.TranslationText),
		deref(r.Reply),
		deref(r.TranslationReply),
	}, "|")

	hash := sha256.Sum256([]byte(content))

	return fmt.Sprintf("%x", hash)
}

// VerifyContentHash проверяет соответствие хеша
func (g *Generator) VerifyContentHash(expectedHash string, r scraper.Review) bool {
	return g.GenerateContentHash(r) == expectedHash
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
