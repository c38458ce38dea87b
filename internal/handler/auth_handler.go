package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"blogcms/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// email verification
	if !emailPattern.MatchString(req.Email) {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 8 {
		WriteError(w, "Пароль должен быть не менее 8 символов", http.StatusBadRequest)
		return
	}

	// name verification
	if strings.TrimSpace(req.Name) == "" || utf8.RuneCountInString(req.Name) > 100 {
		WriteError(w, "Имя должно быть от 1 до 100 символов", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}

	// registering a user in the service
	user, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Email уже существует", http.StatusConflict)
		} else {
			WriteError(w, "Ошибка при регистрации, попробуйте позже", http.StatusInternalServerError)
		}
		return
	}

	// logging in right away
	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Ошибка при входе, попробуйте позже", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.SessionService.Cookie(token))

	WriteSuccess(w, UserResponse{
		UserId: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// один и тот же ответ на неизвестный email и на неверный пароль
	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Неверный email или пароль", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, h.SessionService.Cookie(token))

	WriteSuccess(w, UserResponse{
		UserId: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}, http.StatusOK)
}

// Logout - удаляет cookie сессии, идемпотентен
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.SessionService.Revoke())
	WriteSuccess(w, MessageResponse{Message: "Вы вышли из системы"}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// get user by id
	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, UserResponse{
		UserId: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}, http.StatusOK)
}
