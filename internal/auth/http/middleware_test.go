package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/wopihost/internal/auth/domain"
)

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID string) (*authDomain.IssuedUserToken, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedUserToken), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthenticatedRouter(tokenService *mockTokenService) *gin.Engine {
	router := gin.New()
	router.Use(AuthenticationMiddleware(tokenService, createTestLogger()))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_ValidToken", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("Verify", "valid-token").Return("alice", nil).Once()
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"alice"}`, w.Body.String())
		tokenService.AssertExpectations(t)
	})

	t.Run("Success_CaseInsensitiveBearer", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("Verify", "valid-token").Return("alice", nil).Once()
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bEaReR valid-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		tokenService := &mockTokenService{}
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		tokenService.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		tokenService := &mockTokenService{}
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_EmptyBearerToken", func(t *testing.T) {
		tokenService := &mockTokenService{}
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer   ")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("Verify", "expired-token").Return("", authDomain.ErrInvalidUserToken).Once()
		router := newAuthenticatedRouter(tokenService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		tokenService.AssertExpectations(t)
	})
}
