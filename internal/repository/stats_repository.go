package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Stats - счётчики для админской панели
type Stats struct {
	TotalPosts     int `json:"totalPosts" db:"total_posts"`
	PublishedPosts int `json:"publishedPosts" db:"published_posts"`
	DraftPosts     int `json:"draftPosts" db:"draft_posts"`
	TotalUsers     int `json:"totalUsers" db:"total_users"`
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*Stats, error) {
	var stats Stats

	query := `
		SELECT
			(SELECT COUNT(*) FROM posts) AS total_posts,
			(SELECT COUNT(*) FROM posts WHERE published) AS published_posts,
			(SELECT COUNT(*) FROM posts WHERE NOT published) AS draft_posts,
			(SELECT COUNT(*) FROM users) AS total_users
	`

	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте статистики: %w", err)
	}

	return &stats, nil
}
