package api

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/honeycarbs/jobboard/internal/auth"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

const sessionKey = "session"

// RequestLogger logs one line per request
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// RequireSession authenticates the bearer token and stores the Session in the context
func RequireSession(authn *auth.Authenticator, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				abortJSON(c, http.StatusUnauthorized, "Authorization header required", "MISSING_AUTH_HEADER")
			case errors.Is(err, auth.ErrExpiredToken):
				abortJSON(c, http.StatusUnauthorized, "Token expired", "TOKEN_EXPIRED")
			case errors.Is(err, auth.ErrRevoked):
				abortJSON(c, http.StatusUnauthorized, "Session revoked", "SESSION_REVOKED")
			case errors.Is(err, auth.ErrInvalidToken):
				abortJSON(c, http.StatusUnauthorized, "Invalid token", "TOKEN_INVALID")
			default:
				logger.Error("session lookup failed", "err", err)
				abortJSON(c, http.StatusServiceUnavailable, "Session lookup unavailable", "AUTH_UNAVAILABLE")
			}
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// sessionFrom returns the authenticated session, or nil for anonymous requests
func sessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}

// limiterIdleTTL is how long an IP's bucket survives without traffic
const limiterIdleTTL = 10 * time.Minute

// RateLimit applies a token bucket per client IP
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(rate.Limit(rps), burst, limiterIdleTTL, time.Now)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			abortJSON(c, http.StatusTooManyRequests, "Too many requests", "RATE_LIMITED")
			return
		}
		c.Next()
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters drops buckets idle for longer than idleTTL, sweeping at most once per idleTTL
type ipLimiters struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	clock     func() time.Time
	lastSweep time.Time
	limiters  map[string]*ipLimiter
}

func newIPLimiters(limit rate.Limit, burst int, idleTTL time.Duration, clock func() time.Time) *ipLimiters {
	return &ipLimiters{
		limit:     limit,
		burst:     burst,
		idleTTL:   idleTTL,
		clock:     clock,
		lastSweep: clock(),
		limiters:  make(map[string]*ipLimiter),
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *ipLimiters) sweep(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func abortJSON(c *gin.Context, code int, message, errorCode string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": message,
		"code":  errorCode,
	})
}
