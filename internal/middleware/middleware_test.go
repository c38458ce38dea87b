package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/config"
	"blogcms/internal/models"
	"blogcms/internal/service"
)

func testSessions(t *testing.T) (service.SessionService, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		AppEnv: "development",
		Session: config.Session{
			Secret:     "test-secret-key",
			Duration:   168 * time.Hour,
			CookieName: "session",
		},
	}
	return service.NewSessionService(cfg), cfg
}

func TestSessionMiddleware(t *testing.T) {
	sessions, cfg := testSessions(t)

	var gotUserID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("userID").(string)
		gotEmail, _ = r.Context().Value("email").(string)
		w.WriteHeader(http.StatusOK)
	})

	protected := SessionMiddleware(sessions, cfg.Session.CookieName)(next)

	t.Run("Без куки - 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Требуется аутентификация")
	})

	t.Run("Валидная сессия пропускается", func(t *testing.T) {
		token, err := sessions.Issue(models.SessionPayload{
			UserID: "user-123",
			Email:  "editor@example.com",
			Name:   "Editor",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
		req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-123", gotUserID)
		assert.Equal(t, "editor@example.com", gotEmail)
	})

	t.Run("Подделанный токен - 401", func(t *testing.T) {
		token, err := sessions.Issue(models.SessionPayload{
			UserID: "user-123",
			Email:  "editor@example.com",
			Name:   "Editor",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
		req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token + "x"})
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Требуется аутентификация")
	})
}

func TestChain(t *testing.T) {
	var order []string

	first := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "first")
			next.ServeHTTP(w, r)
		})
	}
	second := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "second")
			next.ServeHTTP(w, r)
		})
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// последний middleware в списке оборачивает снаружи
	Chain(final, first, second).ServeHTTP(rr, req)

	assert.Equal(t, []string{"second", "first", "handler"}, order)
}
