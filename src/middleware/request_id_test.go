package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, router := gin.CreateTestContext(w)
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		if GetRequestID(c) == "" {
			t.Error("expected request_id to be set in context")
		}
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	responseID := w.Header().Get("X-Request-ID")
	if responseID == "" {
		t.Error("expected X-Request-ID header in response")
	}
	if len(responseID) != 8 {
		t.Errorf("expected request_id length 8, got %d", len(responseID))
	}
}

func TestRequestID_UsesExistingID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, router := gin.CreateTestContext(w)
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "custom-id")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if responseID := w.Header().Get("X-Request-ID"); responseID != "custom-id" {
		t.Errorf("expected X-Request-ID 'custom-id', got %s", responseID)
	}
}

func TestGetRequestID_ReturnsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	if requestID := GetRequestID(c); requestID != "" {
		t.Errorf("expected empty request_id, got %s", requestID)
	}
}
