package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/herdscout/herdscout/config"
	"github.com/stretchr/testify/assert"
)

func rateLimitRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.POST("/api/v1/search/ranch", ok)
	r.GET("/api/v1/locations", ok)
	return r
}

func do(r *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_SearchBucketExhausts(t *testing.T) {
	// rps 0 with burst 1: exactly one search, no refill within the test.
	r := rateLimitRouter(config.RateLimitConfig{RequestsPerSecond: 0, Burst: 1})

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/search/ranch"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/search/ranch"))
}

func TestRateLimit_ReadOnlyBucketSeparate(t *testing.T) {
	r := rateLimitRouter(config.RateLimitConfig{RequestsPerSecond: 0, Burst: 1})

	// Exhaust the search bucket.
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/search/ranch"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/search/ranch"))

	// Read-only lookups ride their own, larger bucket.
	for i := 0; i < readOnlyFactor; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/locations"),
			"read-only request %d should pass", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/api/v1/locations"))
}
