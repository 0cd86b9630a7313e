// Package router assembles the gin engine from configuration and the
// registered domain modules.
package router

import (
	"net/http"

	apphttp "estimation_backend/internal/http"
	"estimation_backend/platform/config"
	"estimation_backend/platform/httpkit"
	"estimation_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine: middleware, CORS, health endpoint, and one
// route group per registered module.
func New(cfg config.HTTPConfig, log *logger.Logger, modules []apphttp.Module) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())

	corsCfg := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", httpkit.RequestIDHeader)
	engine.Use(cors.New(corsCfg))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var limiter *httpkit.IPRateLimiter
	if cfg.GetRateLimitPerMinute() > 0 {
		limiter = httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitPerMinute()/60.0), cfg.GetRateLimitBurst(), log)
	}

	ctx := &apphttp.RouterContext{
		Engine:  engine,
		V1:      engine.Group("/api/v1"),
		Limiter: limiter,
	}

	for _, m := range modules {
		m.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", m.Name())
	}

	return engine
}
