package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvenhancer-backend/internal/account"
	googleauth "cvenhancer-backend/internal/auth"
	"cvenhancer-backend/internal/enhance"
	"cvenhancer-backend/internal/history"
	"cvenhancer-backend/internal/shared/config"
	"cvenhancer-backend/internal/shared/metrics"
	"cvenhancer-backend/internal/shared/server/middleware"
	"cvenhancer-backend/internal/shared/server/respond"
	"cvenhancer-backend/internal/usage"
	"cvenhancer-backend/internal/users"
)

// Enhancement runs are expensive LLM calls, so the route gets a stricter
// bucket than the rest of the API.
var enhanceRateRule = middleware.RateLimitRule{Rate: 0.2, Burst: 3}

// RouterDeps carries the constructed handlers into route registration.
// Nil handlers are skipped so tests can wire only what they exercise.
type RouterDeps struct {
	Config         config.Config
	EnhanceHandler *enhance.Handler
	HistoryHandler *history.Handler
	UsageHandler   *usage.Handler
	UsersHandler   *users.Handler
	AccountHandler *account.Handler
	GoogleAuth     *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.UsageHandler != nil {
		deps.UsageHandler.RegisterRoutes(api)
		if cfg.Env == "dev" || cfg.Env == "local" {
			dev := api.Group("/dev")
			deps.UsageHandler.RegisterDevRoutes(dev)
		}
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.EnhanceHandler != nil {
		limiter := middleware.NewRateLimiter(nil)
		limited := api.Group("", middleware.RateLimit(limiter, enhanceRateRule))
		deps.EnhanceHandler.RegisterRoutes(limited)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
