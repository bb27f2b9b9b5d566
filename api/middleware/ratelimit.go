package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herdscout/herdscout/config"
	"github.com/herdscout/herdscout/models"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// readOnlyFactor loosens the bucket for introspection endpoints (locations,
// form info, health): those are cheap, cacheable lookups. Every search
// endpoint drives the live registry's forms through a browser, so searches
// keep the configured (deliberately low) limits and get their own bucket.
const readOnlyFactor = 4

// RateLimit returns per-identity (API key or IP) token-bucket rate limiting
// middleware powered by golang.org/x/time/rate. Each identity holds two
// buckets: one for searches, one for read-only lookups, so schema polling
// never starves a caller's search budget and vice versa.
//
// Entries unused for 1 hour are evicted by a background goroutine that runs
// every 5 minutes, preventing unbounded memory growth.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*limiterEntry)

	getLimiter := func(identity string, search bool) *rate.Limiter {
		rps, burst := cfg.RequestsPerSecond, cfg.Burst
		key := identity + "|search"
		if !search {
			rps *= readOnlyFactor
			burst *= readOnlyFactor
			key = identity + "|read"
		}

		mu.Lock()
		defer mu.Unlock()
		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(rps), burst),
			}
			limiters[key] = entry
		}
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	// Background cleanup goroutine: evict entries not seen in the last hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour)
			mu.Lock()
			for id, entry := range limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(limiters, id)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		// Prefer API key as identity (set by auth middleware); fall back to IP.
		identity, exists := c.Get("api_key")
		if !exists {
			identity = c.ClientIP()
		}

		isSearch := strings.Contains(c.FullPath(), "/search/")

		limiter := getLimiter(identity.(string), isSearch)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.SearchResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "rate limit exceeded, please slow down",
				},
			})
			return
		}

		c.Next()
	}
}
