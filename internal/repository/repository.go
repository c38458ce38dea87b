package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	FindIDBySlug(ctx context.Context, slug string) (string, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
	GetPublished(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountPublished(ctx context.Context) (int, error)
	Search(ctx context.Context, query string, limit int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	TogglePublish(ctx context.Context, postID string) error
	UpdateCoverURL(ctx context.Context, postID string, coverURL *string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (*Stats, error)
}

type Repository struct {
	User  UserRepository
	Post  PostRepository
	Stats StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Post:  NewPostRepository(db),
		Stats: NewStatsRepository(db),
	}
}
