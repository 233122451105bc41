package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"attendance-tracker/models"
)

// KeyedRateLimiter hands out one token bucket per key.
type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // requests per second
	b        int        // burst
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter
}

// RateLimitByUser throttles authenticated users individually and falls back
// to the client IP before authentication.
func RateLimitByUser(r rate.Limit, b int) fiber.Handler {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if claims, ok := c.Locals("user").(*models.Claims); ok {
			key = "user:" + claims.UserID.Hex()
		}
		if !limiter.GetLimiter(key).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, please slow down"})
		}
		return c.Next()
	}
}
