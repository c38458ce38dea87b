package service

import (
	"blogcms/internal/config"
	"blogcms/internal/repository"
	"blogcms/internal/storage"
)

type Service struct {
	Auth    AuthService
	Session SessionService
	Post    PostService
	Slugs   SlugResolver
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	session := NewSessionService(cfg)
	slugs := NewSlugResolver(rep.Post)

	return &Service{
		Auth:    NewAuthService(rep.User, session, cfg),
		Session: session,
		Post:    NewPostService(rep.Post, slugs, storage, cfg),
		Slugs:   slugs,
		Stats:   NewStatsService(rep.Stats),
	}
}
