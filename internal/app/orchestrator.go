package app

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"placereviews-parser/internal/checksum"
	"placereviews-parser/internal/fetcher"
	"placereviews-parser/internal/normalize"
	"placereviews-parser/internal/observability"
	"placereviews-parser/internal/scraper"
	"placereviews-parser/internal/storage"
)

// PageFetcher: всё, что оркестратору нужно от загрузчика
type PageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*fetcher.FetchResponse, error)
}

type Orchestrator struct {
	logger     *observability.Logger
	fetcher    PageFetcher
	scraper    *scraper.Scraper
	normalizer *normalize.Normalizer
	repo       storage.Repository
	checksum   *checksum.Generator
	now        func() time.Time
}

// NewOrchestrator: normalizer и repo могут быть nil
func NewOrchestrator(
	logger *observability.Logger,
	f PageFetcher,
	s *scraper.Scraper,
	n *normalize.Normalizer,
	repo storage.Repository,
) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		fetcher:    f,
		scraper:    s,
		normalizer: n,
		repo:       repo,
		checksum:   checksum.NewGenerator(),
		now:        time.Now,
	}
}

type PaginationStats struct {
	TotalPages       int
	TotalReviews     int
	NewReviews       int
	UpdatedReviews   int
	UnchangedReviews int
	SkippedReviews   int
	StoredReviews    int // всего отзывов места в хранилище после сохранения
	StoppedReason    string
}

type PlaceSummary struct {
	ReviewsCount *int     `json:"reviews_count"`
	Rating       *float64 `json:"rating"`
	HasMorePages bool     `json:"has_more_pages"`
}

// FetchAllReviews обходит страницы по токену продолжения.
// При pageCap <= 0 ограничения нет, иначе загружается не больше pageCap страниц.
// При ошибке загрузки возвращаются уже собранные отзывы вместе с ошибкой.
func (o *Orchestrator) FetchAllReviews(ctx context.Context, seedURL string, pageCap int) ([]scraper.Review, error) {
	reviews, _, err := o.crawl(ctx, seedURL, pageCap)
	return reviews, err
}

// Run обходит страницы и, если задан репозиторий, сохраняет собранное
func (o *Orchestrator) Run(ctx context.Context, seedURL string, pageCap int) ([]scraper.Review, *PaginationStats, error) {
	seedURL = normalize.NormalizeURL(seedURL)

	reviews, stats, crawlErr := o.crawl(ctx, seedURL, pageCap)

	if o.repo != nil && len(reviews) > 0 {
		if err := o.store(ctx, seedURL, reviews, stats); err != nil {
			if crawlErr != nil {
				return reviews, stats, fmt.Errorf("%w (store: %v)", crawlErr, err)
			}
			return reviews, stats, err
		}

		stored, err := o.repo.GetReviewCount(ctx, seedURL)
		if err != nil {
			o.logger.Warn("Failed to count stored reviews", "url", seedURL, "error", err.Error())
		} else {
			stats.StoredReviews = stored
		}
	}

	o.logger.Info("Pagination completed",
		"url", seedURL,
		"total_pages", stats.TotalPages,
		"total_reviews", stats.TotalReviews,
		"new_reviews", stats.NewReviews,
		"updated_reviews", stats.UpdatedReviews,
		"skipped_reviews", stats.SkippedReviews,
		"stored_reviews", stats.StoredReviews,
		"reason", stats.StoppedReason,
	)

	return reviews, stats, crawlErr
}

// Summary читает количество отзывов и общий рейтинг с первой страницы
func (o *Orchestrator) Summary(ctx context.Context, seedURL string) (*PlaceSummary, error) {
	doc, err := o.fetchDocument(ctx, normalize.NormalizeURL(seedURL))
	if err != nil {
		return nil, err
	}
	_, hasMore := o.scraper.NextPageToken(doc)
	return &PlaceSummary{
		ReviewsCount: o.scraper.GetReviewsCount(doc),
		Rating:       o.scraper.GetRating(doc),
		HasMorePages: hasMore,
	}, nil
}

func (o *Orchestrator) crawl(ctx context.Context, seedURL string, pageCap int) ([]scraper.Review, *PaginationStats, error) {
	seedURL = normalize.NormalizeURL(seedURL)

	o.logger.Info("Starting pagination",
		"url", seedURL,
		"page_cap", pageCap,
	)

	stats := &PaginationStats{}
	var reviews []scraper.Review
	currentURL := seedURL

	for pageNum := 1; ; pageNum++ {
		o.logger.Info("Processing page",
			"page", pageNum,
			"url", currentURL,
		)

		doc, err := o.fetchDocument(ctx, currentURL)
		if err != nil {
			o.logger.Error("Fetch failed",
				"page", pageNum,
				"url", currentURL,
				"error", err.Error(),
			)
			stats.StoppedReason = fmt.Sprintf("fetch error at page %d", pageNum)
			return reviews, stats, fmt.Errorf("page %d: %w", pageNum, err)
		}

		pageReviews, err := o.scraper.ParseListing(doc, o.now())
		if err != nil {
			o.logger.Error("Parse listing failed",
				"page", pageNum,
				"url", currentURL,
				"error", err.Error(),
			)
			stats.StoppedReason = fmt.Sprintf("parse error at page %d", pageNum)
			return reviews, stats, fmt.Errorf("page %d (%s): %w", pageNum, currentURL, err)
		}

		for _, r := range pageReviews {
			if o.normalizer != nil {
				r = o.normalizer.Review(r)
				if r.Text != nil {
					o.logger.Debug("Review", "page", pageNum, "name", r.Name, "preview", o.normalizer.TruncatePreview(*r.Text))
				}
			}
			reviews = append(reviews, r)
		}

		stats.TotalPages++
		stats.TotalReviews += len(pageReviews)

		token, hasToken := o.scraper.NextPageToken(doc)

		o.logger.Info("Page analysis",
			"page", pageNum,
			"reviews", len(pageReviews),
			"has_next_token", hasToken,
		)

		if !hasToken {
			stats.StoppedReason = fmt.Sprintf("no continuation token at page %d", pageNum)
			break
		}

		if pageCap > 0 && pageNum >= pageCap {
			stats.StoppedReason = fmt.Sprintf("page cap %d reached", pageCap)
			break
		}

		// Следующий URL строится всегда из seed URL, а не из предыдущей страницы
		nextURL, ok := o.scraper.NextPageURL(seedURL, token)
		if !ok {
			o.logger.Warn("Seed URL has no continuation token parameter, cannot advance",
				"url", seedURL,
				"token_param", o.scraper.Rules().TokenParam,
			)
			stats.StoppedReason = "token parameter missing in seed url"
			break
		}

		currentURL = nextURL
	}

	return reviews, stats, nil
}

func (o *Orchestrator) fetchDocument(ctx context.Context, urlStr string) (*goquery.Document, error) {
	resp, err := o.fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	return scraper.ParseHTML(resp.Body)
}

func (o *Orchestrator) store(ctx context.Context, placeURL string, reviews []scraper.Review, stats *PaginationStats) error {
	for _, r := range reviews {
		row, ok := storage.NewReviewRow(placeURL, r, o.checksum.GenerateContentHash(r))
		if !ok {
			o.logger.Warn("Review has no id, skipped", "name", r.Name)
			stats.SkippedReviews++
			continue
		}

		stored, err := o.repo.GetCheckSum(ctx, placeURL, row.ReviewID)
		if err != nil {
			return fmt.Errorf("failed to read checksum of review %s: %w", row.ReviewID, err)
		}
		if stored != "" && o.checksum.VerifyContentHash(stored, r) {
			stats.UnchangedReviews++
			continue
		}

		isNew, isUpdated, err := o.repo.UpsertReview(ctx, row)
		if err != nil {
			return fmt.Errorf("failed to store review %s: %w", row.ReviewID, err)
		}
		if isNew {
			stats.NewReviews++
		}
		if isUpdated {
			stats.UpdatedReviews++
		}
	}
	return nil
}
