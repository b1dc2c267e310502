package api

import (
	"log"
	stdhttp "net/http"

	intconfig "concierge/internal/config"
	h "concierge/internal/http/handlers"
	"concierge/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, concierge h.ConciergeHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", h.Root)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		limiter := middleware.NewRateLimiter(env.RateLimitPerMinute)
		v1 := api.Group("/v1", middleware.AuthOptional(env.JWTSecret))
		agent := v1.Group("/concierge-agent", limiter.Limit())
		agent.POST("", concierge.Plan)
		agent.POST("/pdf", concierge.PlanPDF)

		v1.GET("/lodging", concierge.LookupLodging)
	}

	h.SetRouter(r)
	return r
}
