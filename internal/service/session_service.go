package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogcms/internal/config"
	"blogcms/internal/models"
)

// ErrInvalidSession - единый результат любой неудачной проверки токена:
// плохая подпись, истёкший срок, кривые claims. Частичного доверия нет.
var ErrInvalidSession = errors.New("недействительная сессия")

type SessionService interface {
	Issue(payload models.SessionPayload) (string, error)
	Verify(tokenString string) (*models.SessionPayload, error)
	Cookie(token string) *http.Cookie
	Revoke() *http.Cookie
}

type sessionService struct {
	cfg *config.Config
}

func NewSessionService(cfg *config.Config) SessionService {
	return &sessionService{cfg: cfg}
}

func (s *sessionService) Issue(payload models.SessionPayload) (string, error) {
	claims := jwt.MapClaims{
		"userId": payload.UserID,
		"email":  payload.Email,
		"name":   payload.Name,
		"exp":    time.Now().Add(s.cfg.Session.Duration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.Session.Secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена сессии: %w", err)
	}

	return tokenString, nil
}

func (s *sessionService) Verify(tokenString string) (*models.SessionPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// checking the signature algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Session.Secret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	userID, ok1 := claims["userId"].(string)
	email, ok2 := claims["email"].(string)
	name, ok3 := claims["name"].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, ErrInvalidSession
	}

	return &models.SessionPayload{
		UserID: userID,
		Email:  email,
		Name:   name,
	}, nil
}

func (s *sessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.Session.Duration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.IsProduction(),
	}
}

// Revoke returns an already expired cookie, idempotent
func (s *sessionService) Revoke() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.IsProduction(),
	}
}
