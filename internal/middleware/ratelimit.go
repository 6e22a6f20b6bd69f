package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

// RateLimit limits each client IP to rate, in limiter's formatted syntax
// ("300-M" is 300 requests per minute).
func RateLimit(rate string) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), r)

	limiterMiddleware := stdlib.NewMiddleware(
		instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, req *http.Request) {}),
	)

	return func(c *gin.Context) {
		passed := false
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests")
		}
	}, nil
}
