package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"blogcms/internal/models"
	"blogcms/internal/repository"
)

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostsGetResponse struct {
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type PostRequest struct {
	Title   string  `json:"title" validate:"required,min=3,max=200"`
	Content string  `json:"content" validate:"required"`
	Excerpt *string `json:"excerpt" validate:"omitempty,max=300"`
}

// validatePostRequest - проверки полей с понятными сообщениями,
// по одному сообщению на поле
func (h *Handlers) validatePostRequest(req *PostRequest) string {
	titleLen := utf8.RuneCountInString(strings.TrimSpace(req.Title))
	if titleLen < 3 {
		return "Заголовок слишком короткий (мин. 3 символа)"
	}
	if titleLen > 200 {
		return "Заголовок слишком длинный (макс. 200 символов)"
	}

	if strings.TrimSpace(req.Content) == "" {
		return "Отсутствует содержимое поста"
	}

	if req.Excerpt != nil && utf8.RuneCountInString(*req.Excerpt) > 300 {
		return "Анонс слишком длинный (макс. 300 символов)"
	}

	if err := h.Validate.Struct(req); err != nil {
		return "Неверные данные"
	}

	return ""
}

// writePostError - единая раскладка ошибок сервиса постов по статусам
func writePostError(w http.ResponseWriter, err error) {
	switch {
	case strings.Contains(err.Error(), "не найден"):
		WriteError(w, "Пост не найден", http.StatusNotFound)
	case strings.Contains(err.Error(), "доступ запрещен"):
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
	default:
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
	}
}

// GetPosts - публичная лента опубликованных постов с пагинацией
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	// Pagination parameters
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	posts, err := h.PostRepo.GetPublished(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		return
	}

	total, err := h.PostRepo.CountPublished(r.Context())
	if err != nil {
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	// forming the response
	response := PostsGetResponse{
		Posts: posts,
		Pagination: PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

// GetPostBySlug - публичная страница поста; черновики для читателя
// неотличимы от несуществующих постов
func (h *Handlers) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.PostRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		}
		return
	}

	if !post.Published {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

// SearchPosts - серверный поиск для командной палитры
func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, "Отсутствует параметр поиска q", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	posts, err := h.PostRepo.Search(r.Context(), query, limit)
	if err != nil {
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// GetMyPosts - посты текущего автора, включая черновики
func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostRepo.GetByAuthorID(r.Context(), userID)
	if err != nil {
		WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Ошибка на сервере, попробуйте позже", http.StatusInternalServerError)
		}
		return
	}

	// чужой пост в админке не отдаём
	if post.AuthorID != userID {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if msg := h.validatePostRequest(&req); msg != "" {
		WriteError(w, msg, http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
	}

	// creating a post: slug is derived from the title, draft by default
	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		WriteError(w, "Ошибка при создании поста, попробуйте позже", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if msg := h.validatePostRequest(&req); msg != "" {
		WriteError(w, msg, http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdatePostRequest{
		PostID:   postID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
	}

	// updating the post
	post, err := h.PostService.UpdatePost(r.Context(), serviceReq)
	if err != nil {
		writePostError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, userID); err != nil {
		writePostError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}

// TogglePublish - переключение draft <-> published
func (h *Handlers) TogglePublish(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostService.TogglePublish(r.Context(), postID, userID)
	if err != nil {
		writePostError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	// getting the file
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// check formats
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UploadCover(r.Context(), postID, userID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		writePostError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) DeleteCover(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeleteCover(r.Context(), postID, userID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост или обложка не найдены", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "доступ запрещен") {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else {
			WriteError(w, "Ошибка удаления обложки", http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Обложка успешно удалена"}, http.StatusOK)
}
