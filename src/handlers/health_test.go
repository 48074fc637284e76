package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/franes/franes-backend/src/database"
)

func TestHandleHealth_NoDatabase(t *testing.T) {
	handler := NewHealthHandler(database.NewFromPool(nil))

	router := gin.New()
	router.GET("/health", handler.HandleHealth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestHandleReady_NoDatabase(t *testing.T) {
	handler := NewHealthHandler(database.NewFromPool(nil))

	router := gin.New()
	router.GET("/ready", handler.HandleReady)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}
