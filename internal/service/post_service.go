package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"blogcms/internal/config"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/storage"
)

// slugRetryAttempts bounds the probe-insert retry when a concurrent
// create grabs the candidate slug between the probe and the insert
const slugRetryAttempts = 3

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, authorID string) error
	TogglePublish(ctx context.Context, postID, authorID string) (*models.Post, error)
	UploadCover(ctx context.Context, postID, authorID, fileName string, file io.Reader, size int64) (*models.Post, error)
	DeleteCover(ctx context.Context, postID, authorID string) error
}

type postService struct {
	postRepo repository.PostRepository
	slugs    SlugResolver
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, slugs SlugResolver, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		slugs:    slugs,
		storage:  storage,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Published: false,
	}

	baseSlug := Slugify(req.Title)

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		slug, err := p.slugs.EnsureUnique(ctx, baseSlug, "")
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		err = p.postRepo.Create(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
		// гонка: параллельное создание заняло слаг, пробуем следующий суффикс
		log.Printf("Слаг %s занят конкурентной вставкой, повторяем подбор", slug)
	}

	return nil, fmt.Errorf("не удалось подобрать уникальный слаг для заголовка %q", req.Title)
}

func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != req.AuthorID {
		return nil, errors.New("доступ запрещен")
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Excerpt = req.Excerpt

	baseSlug := Slugify(req.Title)

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		// сам пост не считается коллизией: слаг остаётся прежним,
		// если заголовок не поменялся
		slug, err := p.slugs.EnsureUnique(ctx, baseSlug, post.PostID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		err = p.postRepo.Update(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("не удалось подобрать уникальный слаг для заголовка %q", req.Title)
}

func (p *postService) DeletePost(ctx context.Context, postID, authorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != authorID {
		return errors.New("доступ запрещен")
	}

	if post.CoverURL != nil {
		if err := p.storage.DeleteCover(ctx, p.coverObjectName(*post.CoverURL)); err != nil {
			log.Printf("Предупреждение: не удалось удалить обложку из MinIO: %v", err)
		}
	}

	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) TogglePublish(ctx context.Context, postID, authorID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		return nil, errors.New("доступ запрещен")
	}

	err = p.postRepo.TogglePublish(ctx, postID)
	if err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) UploadCover(ctx context.Context, postID, authorID, fileName string, file io.Reader, size int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		return nil, errors.New("доступ запрещен")
	}

	objectName, coverURL, err := p.storage.UploadCover(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки обложки в MinIO: %w", err)
	}

	// старая обложка больше не нужна
	if post.CoverURL != nil {
		if err := p.storage.DeleteCover(ctx, p.coverObjectName(*post.CoverURL)); err != nil {
			log.Printf("Предупреждение: не удалось удалить старую обложку: %v", err)
		}
	}

	err = p.postRepo.UpdateCoverURL(ctx, postID, &coverURL)
	if err != nil {
		p.storage.DeleteCover(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения обложки в БД: %w", err)
	}

	post.CoverURL = &coverURL
	return post, nil
}

func (p *postService) DeleteCover(ctx context.Context, postID, authorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != authorID {
		return errors.New("доступ запрещен")
	}

	if post.CoverURL == nil {
		return errors.New("обложка не найдена")
	}

	if err := p.storage.DeleteCover(ctx, p.coverObjectName(*post.CoverURL)); err != nil {
		log.Printf("Предупреждение: не удалось удалить обложку из MinIO: %v", err)
	}

	return p.postRepo.UpdateCoverURL(ctx, postID, nil)
}

func (p *postService) coverObjectName(coverURL string) string {
	marker := "/" + p.cfg.MinIO.BucketName + "/"
	idx := strings.Index(coverURL, marker)
	if idx == -1 {
		return coverURL
	}
	return coverURL[idx+len(marker):]
}
