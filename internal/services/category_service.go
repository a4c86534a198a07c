package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = 10 * time.Minute
)

type CategoryService struct {
	db    *sql.DB
	redis *redis.Client
	log   *logrus.Entry
}

func NewCategoryService(db *sql.DB, redisClient *redis.Client, log logrus.FieldLogger) *CategoryService {
	return &CategoryService{
		db:    db,
		redis: redisClient,
		log:   log.WithField("component", "categories"),
	}
}

// ListCategories returns the seeded category master data
// @Summary List categories
// @Description Categories ordered by type then name
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} ErrorResponse
// @Router /transactions/categories [get]
func (s *CategoryService) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := s.fromCache(ctx); ok {
		sendJSON(w, http.StatusOK, cached)
		return
	}

	categories, err := s.queryCategories(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to fetch categories")
		SendErrorResponse(w, "Failed to fetch categories", http.StatusInternalServerError, nil)
		return
	}

	s.toCache(ctx, categories)
	sendJSON(w, http.StatusOK, categories)
}

func (s *CategoryService) queryCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, category_name, category_type
		FROM categories
		ORDER BY category_type, category_name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.CategoryType); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *CategoryService) fromCache(ctx context.Context) ([]models.Category, bool) {
	if s.redis == nil {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("Category cache read failed")
		}
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		s.log.WithError(err).Warn("Discarding malformed category cache entry")
		return nil, false
	}
	return categories, true
}

func (s *CategoryService) toCache(ctx context.Context, categories []models.Category) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, categoriesCacheKey, raw, categoriesCacheTTL).Err(); err != nil {
		s.log.WithError(err).Warn("Category cache write failed")
	}
}
