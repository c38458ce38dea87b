package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"blogcms/internal/config"
	handlers "blogcms/internal/handler"
	"blogcms/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:    8080,
		AppEnv:        "development",
		MaxUploadSize: 10 * 1024 * 1024,
		Session: config.Session{
			Secret:     "test-secret-key",
			Duration:   168 * time.Hour,
			CookieName: "session",
		},
	}
}

func createTestHandler(cfg *config.Config) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService:    &MockAuthService{},
		SessionService: service.NewSessionService(cfg),
		PostService:    &MockPostService{},
		StatsService:   &MockStatsService{},
		PostRepo:       &MockPostRepository{},
		UserRepo:       &MockUserRepository{},
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

func TestNewHandlers(t *testing.T) {
	cfg := testConfig()

	handler := createTestHandler(cfg)

	assert.NotNil(t, handler.AuthService)
	assert.NotNil(t, handler.SessionService)
	assert.NotNil(t, handler.PostService)
	assert.NotNil(t, handler.StatsService)
	assert.NotNil(t, handler.PostRepo)
	assert.NotNil(t, handler.UserRepo)
	assert.NotNil(t, handler.Cfg)
	assert.NotNil(t, handler.Validate)
}
