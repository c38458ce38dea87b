package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogcms/cmd/app"
	"blogcms/internal/config"
	handlers "blogcms/internal/handler"
	"blogcms/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	// секрет сессии обязателен: без него токены нечем подписывать
	if cfg.Session.Secret == "" {
		log.Fatal("SESSION_SECRET не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	sessionAuth := middleware.SessionMiddleware(services.Session, cfg.Session.CookieName)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}", handler.GetPostBySlug).Methods(http.MethodGet)
	api.HandleFunc("/search", handler.SearchPosts).Methods(http.MethodGet)

	me := api.PathPrefix("/me").Subrouter()
	me.Use(mux.MiddlewareFunc(sessionAuth))
	me.HandleFunc("", handler.GetCurrentUser).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(sessionAuth))
	admin.HandleFunc("/posts", handler.GetMyPosts).Methods(http.MethodGet)
	admin.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/{id}/publish", handler.TogglePublish).Methods(http.MethodPatch)
	admin.HandleFunc("/posts/{id}/cover", handler.UploadCover).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}/cover", handler.DeleteCover).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", handler.GetStats).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
