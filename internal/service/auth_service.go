package service

import (
	"context"
	"fmt"
	"log"

	"blogcms/internal/config"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	session  SessionService
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, session SessionService, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		session:  session,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("пользователь с email %s уже существует", req.Email)
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

// Login returns the user and a signed session token.
// Любая причина отказа схлопывается в один общий ответ, чтобы по
// тексту ошибки нельзя было перебирать email-адреса.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		log.Printf("Неудачный вход для %s: %v", email, err)
		return nil, "", fmt.Errorf("неверный email или пароль")
	}

	token, err := s.session.Issue(models.SessionPayload{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return nil, "", fmt.Errorf("ошибка выпуска сессии: %w", err)
	}

	return user, token, nil
}
