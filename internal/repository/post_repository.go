package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

// ErrSlugTaken - нарушение уникальности слага; вызывающий может
// пересчитать слаг и повторить вставку
var ErrSlugTaken = errors.New("слаг уже занят")

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID string  `json:"author_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Excerpt  *string `json:"excerpt"`
}

type UpdatePostRequest struct {
	PostID   string  `json:"post_id"`
	AuthorID string  `json:"author_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Excerpt  *string `json:"excerpt"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts
        (post_id, author_id, title, slug, content, excerpt, published, published_at, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :title, :slug, :content, :excerpt, :published, :published_at, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) && strings.Contains(err.Error(), "slug") {
			return fmt.Errorf("%w: %s", ErrSlugTaken, post.Slug)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s не найден", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE slug = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост со слагом %s не найден", slug)
		}
		return nil, fmt.Errorf("ошибка при получении поста по слагу: %w", err)
	}

	return &post, nil
}

// FindIDBySlug returns an empty string when no post holds the slug
func (r *PostRepositoryImpl) FindIDBySlug(ctx context.Context, slug string) (string, error) {
	query := `SELECT post_id FROM posts WHERE slug = $1`

	var postID string
	err := r.db.GetContext(ctx, &postID, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ошибка при проверке слага: %w", err)
	}

	return postID, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY updated_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetPublished(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE published ORDER BY published_at DESC LIMIT $1 OFFSET $2`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении опубликованных постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountPublished(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE published`

	var count int
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте опубликованных постов: %w", err)
	}

	return count, nil
}

// Search - поиск по опубликованным постам для командной палитры
func (r *PostRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]models.Post, error) {
	sqlQuery := `
        SELECT * FROM posts
        WHERE published AND (title ILIKE $1 OR COALESCE(excerpt, '') ILIKE $1 OR content ILIKE $1)
        ORDER BY published_at DESC LIMIT $2
    `

	pattern := "%" + query + "%"

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, sqlQuery, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			slug = :slug,
			content = :content,
			excerpt = :excerpt,
			updated_at = :updated_at
		WHERE post_id = :post_id AND author_id = :author_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) && strings.Contains(err.Error(), "slug") {
			return fmt.Errorf("%w: %s", ErrSlugTaken, post.Slug)
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден или у вас нет прав на его изменение")
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден")
	}

	return nil
}

// TogglePublish - единственные два перехода статуса:
// draft -> published проставляет published_at, обратный переход очищает
func (r *PostRepositoryImpl) TogglePublish(ctx context.Context, postID string) error {
	query := `
		UPDATE posts SET
			published = NOT published,
			published_at = CASE WHEN published THEN NULL ELSE CURRENT_TIMESTAMP END,
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при смене статуса поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден")
	}

	return nil
}

func (r *PostRepositoryImpl) UpdateCoverURL(ctx context.Context, postID string, coverURL *string) error {
	query := `
		UPDATE posts SET
			cover_url = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, coverURL, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении обложки поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден")
	}

	return nil
}
