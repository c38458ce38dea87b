package middleware

import (
	"context"
	"log"
	"net/http"

	handlers "blogcms/internal/handler"
	"blogcms/internal/service"
)

type Middleware func(http.Handler) http.Handler

// SessionMiddleware verifies the session cookie and adds user data to the context.
// Любой исход проверки, кроме успешного - единый ответ 401, без деталей.
func SessionMiddleware(sessions service.SessionService, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				handlers.WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			payload, err := sessions.Verify(cookie.Value)
			if err != nil {
				handlers.WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			// Adding user data to the context
			ctx := r.Context()
			ctx = context.WithValue(ctx, "userID", payload.UserID)
			ctx = context.WithValue(ctx, "email", payload.Email)
			ctx = context.WithValue(ctx, "name", payload.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Method: %s, URL: %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
