package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorIdleTimeout = 5 * time.Minute

// RateLimiterConfig sets the per-IP token bucket parameters.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorTable struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimiterConfig
}

func newVisitorTable(config RateLimiterConfig) *visitorTable {
	vt := &visitorTable{
		visitors: make(map[string]*visitor),
		config:   config,
	}
	go vt.prune()
	return vt
}

func (vt *visitorTable) allow(ip string) bool {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	v, ok := vt.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(vt.config.RequestsPerSecond), vt.config.Burst)}
		vt.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// prune drops buckets for clients that have gone quiet so the table does not
// grow without bound.
func (vt *visitorTable) prune() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		vt.mu.Lock()
		for ip, v := range vt.visitors {
			if time.Since(v.lastSeen) > visitorIdleTimeout {
				delete(vt.visitors, ip)
			}
		}
		vt.mu.Unlock()
	}
}

// RateLimiterMiddleware rejects requests over the per-IP budget with 429.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	table := newVisitorTable(config)

	return func(c *gin.Context) {
		if !table.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
