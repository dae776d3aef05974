package middleware

import (
	"net/http"
	"sync"
	"time"

	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitPerIP keeps one token bucket per client IP. Idle buckets are
// dropped after an hour so the map cannot grow without bound.
func RateLimitPerIP(r rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	cleanup := func() {
		cutoff := time.Now().Add(-time.Hour)
		for ip, e := range clients {
			if e.lastSeen.Before(cutoff) {
				delete(clients, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(r, burst)}
			clients[ip] = e
			if len(clients)%256 == 0 {
				cleanup()
			}
		}
		e.lastSeen = time.Now()
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
