package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"placereviews-parser/internal/observability"
	"placereviews-parser/internal/storage"
)

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Тестируем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

// UpsertReview сохраняет или обновляет отзыв
func (r *Repository) UpsertReview(ctx context.Context, row *storage.ReviewRow) (isNew bool, isUpdated bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	// MERGE statement для MS SQL; OUTPUT $action различает вставку и обновление.
	// CreatedAt при обновлении сохраняется с первого обхода.
	query := `
		MERGE INTO TblReviews AS target
		USING (SELECT @PlaceURL AS PlaceURL, @ReviewID AS ReviewID) AS source
		ON target.[PlaceURL] = source.PlaceURL AND target.[ReviewID] = source.ReviewID
		WHEN MATCHED AND target.[CheckSum] <> @CheckSum THEN
			UPDATE SET
				[Name] = @Name,
				[ProfileURL] = @ProfileURL,
				[Rating] = @Rating,
				[Text] = @Text,
				[TranslationText] = @TranslationText,
				[Reply] = @Reply,
				[TranslationReply] = @TranslationReply,
				[ProfileImg] = @ProfileImg,
				[CreatedAt] = COALESCE(target.[CreatedAt], @CreatedAt),
				[CheckSum] = @CheckSum
		WHEN NOT MATCHED THEN
			INSERT ([PlaceURL], [ReviewID], [Name], [ProfileURL], [Rating], [Text], [TranslationText], [Reply], [TranslationReply], [ProfileImg], [CreatedAt], [CheckSum])
			VALUES (@PlaceURL, @ReviewID, @Name, @ProfileURL, @Rating, @Text, @TranslationText, @Reply, @TranslationReply, @ProfileImg, @CreatedAt, @CheckSum)
		OUTPUT $action;
	`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var action string
	err = stmt.QueryRowContext(ctx,
		sql.Named("PlaceURL", row.PlaceURL),
		sql.Named("ReviewID", row.ReviewID),
		sql.Named("Name", row.Name),
		sql.Named("ProfileURL", row.ProfileURL),
		sql.Named("Rating", row.Rating),
		sql.Named("Text", row.Text),
		sql.Named("TranslationText", row.TranslationText),
		sql.Named("Reply", row.Reply),
		sql.Named("TranslationReply", row.TranslationReply),
		sql.Named("ProfileImg", row.ProfileImg),
		sql.Named("CreatedAt", row.CreatedAt),
		sql.Named("CheckSum", row.CheckSum),
	).Scan(&action)

	if errors.Is(err, sql.ErrNoRows) {
		// Совпал по ключу с тем же хешем, изменений нет
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to execute upsert: %w", err)
	}

	switch action {
	case "INSERT":
		isNew = true
	case "UPDATE":
		isUpdated = true
	}

	return isNew, isUpdated, nil
}

// GetCheckSum получает сохранённый хеш отзыва
func (r *Repository) GetCheckSum(ctx context.Context, placeURL, reviewID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT [CheckSum] FROM TblReviews WHERE [PlaceURL] = @PlaceURL AND [ReviewID] = @ReviewID`

	var checkSum string
	err := r.db.QueryRowContext(ctx, query,
		sql.Named("PlaceURL", placeURL),
		sql.Named("ReviewID", reviewID),
	).Scan(&checkSum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query database: %w", err)
	}

	return checkSum, nil
}

// GetReviewCount получает количество сохранённых отзывов места
func (r *Repository) GetReviewCount(ctx context.Context, placeURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblReviews WHERE [PlaceURL] = @PlaceURL`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	if err := stmt.QueryRowContext(ctx, sql.Named("PlaceURL", placeURL)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}

	return count, nil
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
