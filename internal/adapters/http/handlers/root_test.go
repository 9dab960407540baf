package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRootHandler_Index(t *testing.T) {
	router := gin.New()
	router.GET("/api/", NewRootHandler("/api").Index)

	t.Run("plain http", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://quotes.local/api/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"authors": "http://quotes.local/api/authors/",
			"quotes": "http://quotes.local/api/quotes/"
		}`, w.Body.String())
	})

	t.Run("behind a TLS proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://quotes.local/api/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"https://quotes.local/api/quotes/"`)
	})
}
