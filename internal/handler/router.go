package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/ratelimit"
	"github.com/kiddoland/backend/internal/service"
)

type RouterDeps struct {
	Auth    *service.AuthService
	Story   *service.StoryService
	Limiter *ratelimit.Limiter // nil disables throttling
	CORS    config.CORSConfig
	Logger  zerolog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(deps.Logger))
	r.Use(CORSMiddleware(deps.CORS.AllowedOrigins, deps.CORS.AllowCredentials))
	r.Use(RequestLogger(deps.Logger))
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Not Found")
	})

	r.GET("/", Root)
	r.GET("/health", Health)
	r.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(deps.Auth)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)

	protected := r.Group("")
	protected.Use(AuthMiddleware(deps.Auth))
	if deps.Limiter != nil {
		protected.Use(RateLimit(deps.Limiter))
	}
	protected.GET("/auth/validate", authHandler.Validate)

	storyHandler := NewStoryHandler(deps.Story)
	protected.POST("/story/generate", storyHandler.Generate)
	protected.POST("/story/rewrite", storyHandler.Rewrite)
	protected.POST("/ai/sample", storyHandler.Sample)

	return r
}
