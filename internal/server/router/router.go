package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/config"
	"github.com/mamadbah2/railfit/internal/server/handlers"
)

// Handlers groups the endpoint adapters mounted by New.
type Handlers struct {
	Certificates *handlers.CertificateHandler
	Dashboard    *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
// Generated files in uploadsDir are served under /uploads.
func New(cfg config.ServerConfig, uploadsDir string, h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.Static("/uploads", uploadsDir)

	api := r.Group("/api")
	api.GET("/health", handlers.Health)
	api.POST("/generate-pdf", h.Certificates.GeneratePDF)
	api.POST("/generate-qr", h.Certificates.GenerateQR)
	api.GET("/certificates", h.Certificates.ListCertificates)

	if h.Dashboard != nil {
		api.GET("/inventory", h.Dashboard.ListInventory)
		api.GET("/inventory/export", h.Dashboard.ExportInventory)
		api.GET("/users", h.Dashboard.ListUsers)
		api.POST("/users", h.Dashboard.CreateUser)
		api.DELETE("/users/:id", h.Dashboard.DeleteUser)
		api.GET("/overview", h.Dashboard.Overview)
		api.GET("/analytics", h.Dashboard.Analytics)
	}

	logger.Info("router initialized", zap.Strings("cors_origins", cfg.AllowedOrigins))

	return r
}

// corsConfig allows the methods the API routes use. Credentials are only
// honoured for an explicit origin allowlist.
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AddAllowHeaders("Accept-Language")
	c.AddExposeHeaders("Content-Disposition")
	c.MaxAge = 12 * time.Hour
	return c
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("request completed", fields...)
	}
}
