package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthRateLimit returns a per-IP limiter for the auth surface, keeping
// login and register endpoints from being brute-forced.
func AuthRateLimit(perMinute int) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  int64(perMinute),
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
