package config

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// GzipSharedConfig contiene la configuración para el módulo compartido de compresión
type GzipSharedConfig struct {
	EnableGzip          bool
	AlwaysTryDecompress bool     // Descomprime cuerpos con Content-Encoding: gzip
	CompressionLevel    int      // gzip.DefaultCompression, gzip.BestSpeed, ...
	GzipExcludedPaths   []string // Rutas que nunca se comprimen
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() GzipSharedConfig {
	return GzipSharedConfig{
		EnableGzip:          true,
		AlwaysTryDecompress: true,
		CompressionLevel:    gzip.DefaultCompression,
		GzipExcludedPaths:   []string{"/health", "/metrics", "/api/v1/health"},
	}
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config GzipSharedConfig) {
	if !config.EnableGzip {
		return
	}

	options := []gzip.Option{gzip.WithExcludedPaths(config.GzipExcludedPaths)}
	if config.AlwaysTryDecompress {
		options = append(options, gzip.WithDecompressFn(gzip.DefaultDecompressHandle))
	}
	router.Use(gzip.Gzip(config.CompressionLevel, options...))
}
