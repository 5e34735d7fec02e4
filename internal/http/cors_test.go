package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := createTestLogger()

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "Disabled", enabled: false, origins: "https://office.example.com", wantNil: true},
		{name: "EnabledWithoutOrigins", enabled: true, origins: "", wantNil: true},
		{name: "EnabledWithOnlySeparators", enabled: true, origins: " , ,", wantNil: true},
		{name: "EnabledWithOrigins", enabled: true, origins: "https://office.example.com, https://host.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"https://office.example.com", "https://host.example.com"},
		parseOrigins(" https://office.example.com ,,https://host.example.com "),
	)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://office.example.com", createTestLogger())

	router := gin.New()
	router.Use(middleware)
	router.POST("/wopi/files/:fileId/contents", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Success_AllowedOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/wopi/files/doc/contents", nil)
		req.Header.Set("Origin", "https://office.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "X-WOPI-Override")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://office.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Error_UnknownOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/wopi/files/doc/contents", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
