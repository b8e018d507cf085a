package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(rps, burst))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doPing(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	r := newLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1"))
	}
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	r := newLimitedRouter(0.001, 2)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.2"))
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.2"))
}

func TestRateLimit_PerClientBuckets(t *testing.T) {
	r := newLimitedRouter(0.001, 1)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.3"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.3"))

	// a different client still has a full bucket
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.4"))
}
