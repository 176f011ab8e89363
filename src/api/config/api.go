package config

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIConfig configuración del módulo API (health check)
type APIConfig struct {
	ServiceName string
	Version     string
	DB          *sql.DB // nil cuando la bitácora está en memoria
}

// DefaultAPIConfig devuelve una configuración por defecto
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		ServiceName: "sell-service",
		Version:     "1.0.0",
	}
}

// SetupAPIModule registra /health en la raíz y en el grupo v1
func SetupAPIModule(router *gin.Engine, v1 *gin.RouterGroup, cfg APIConfig) {
	handler := healthHandler(cfg)
	router.GET("/health", handler)
	v1.GET("/health", handler)
}

func healthHandler(cfg APIConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		database := "memory"
		status := http.StatusOK
		if cfg.DB != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.DB.PingContext(pingCtx); err != nil {
				log.Printf("⚠️  Health check: database unreachable: %v", err)
				database = "down"
				status = http.StatusServiceUnavailable
			} else {
				database = "up"
			}
		}

		ctx.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"service":  cfg.ServiceName,
			"version":  cfg.Version,
			"database": database,
		})
	}
}
