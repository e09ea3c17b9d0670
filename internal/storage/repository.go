package storage

import (
	"context"
	"database/sql"
	"time"

	"placereviews-parser/internal/scraper"
)

// ReviewRow представляет отзыв для сохранения в БД
type ReviewRow struct {
	ReviewID         string // id автора из URL профиля
	PlaceURL         string // seed URL, с которого начат обход
	Name             sql.NullString
	ProfileURL       sql.NullString
	Rating           sql.NullFloat64
	Text             sql.NullString
	TranslationText  sql.NullString
	Reply            sql.NullString
	TranslationReply sql.NullString
	ProfileImg       sql.NullString
	CreatedAt        sql.NullTime
	CheckSum         string // SHA256 содержимого
}

// Repository интерфейс для работы с хранилищем отзывов
type Repository interface {
	// UpsertReview сохраняет или обновляет отзыв, возвращает (isNew, isUpdated, error)
	UpsertReview(ctx context.Context, row *ReviewRow) (isNew bool, isUpdated bool, err error)

	// GetCheckSum возвращает сохранённый хеш отзыва или "" если его нет
	GetCheckSum(ctx context.Context, placeURL, reviewID string) (string, error)

	// GetReviewCount получает количество сохранённых отзывов места
	GetReviewCount(ctx context.Context, placeURL string) (int, error)

	Close() error
}

// NewReviewRow переводит запись отзыва в строку таблицы. Отзыв без id сохранить нельзя.
func NewReviewRow(placeURL string, r scraper.Review, checkSum string) (*ReviewRow, bool) {
	if r.ID == nil || *r.ID == "" {
		return nil, false
	}
	return &ReviewRow{
		ReviewID:         *r.ID,
		PlaceURL:         placeURL,
		Name:             nullString(r.Name),
		ProfileURL:       nullString(r.ProfileURL),
		Rating:           nullFloat(r.Rating),
		Text:             nullString(r.Text),
		TranslationText:  nullString(r.TranslationText),
		Reply:            nullString(r.Reply),
		TranslationReply: nullString(r.TranslationReply),
		ProfileImg:       nullString(r.ProfileImg),
		CreatedAt:        nullTime(r.CreatedAt),
		CheckSum:         checkSum,
	}, true
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
