package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogcms/internal/config"
	"blogcms/internal/repository"
	"blogcms/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	SessionService service.SessionService
	PostService    service.PostService
	StatsService   service.StatsService
	PostRepo       repository.PostRepository
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		SessionService: service.Session,
		PostService:    service.Post,
		StatsService:   service.Stats,
		PostRepo:       repo.Post,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
