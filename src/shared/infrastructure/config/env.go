package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config configuración del servicio leída de variables de entorno
type Config struct {
	Port              string
	BackofficeAPIURL  string
	UpstreamTimeout   time.Duration
	JWTSecret         string
	PrometheusEnabled bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ReferenceTTL time.Duration
	ProductsTTL  time.Duration
	DraftIdleTTL time.Duration

	Gzip GzipSharedConfig
}

// Load lee la configuración. Fuera de producción carga antes un .env si existe.
func Load() Config {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("ℹ️  No .env file found, using environment variables")
		}
	}

	gzipCfg := DefaultSharedConfig()
	gzipCfg.EnableGzip = getEnvBool("GZIP_ENABLED", gzipCfg.EnableGzip)
	gzipCfg.AlwaysTryDecompress = getEnvBool("GZIP_DECOMPRESS", gzipCfg.AlwaysTryDecompress)
	gzipCfg.CompressionLevel = getEnvInt("GZIP_LEVEL", gzipCfg.CompressionLevel)

	return Config{
		Port:              getEnv("PORT", "8080"),
		BackofficeAPIURL:  getEnv("BACKOFFICE_API_URL", "http://localhost:3000/api"),
		UpstreamTimeout:   getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PrometheusEnabled: os.Getenv("PROMETHEUS_ENABLED") == "true",

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "sell_db"),

		ReferenceTTL: getEnvDuration("REFERENCE_TTL", 10*time.Minute),
		ProductsTTL:  getEnvDuration("PRODUCTS_TTL", 5*time.Minute),
		DraftIdleTTL: getEnvDuration("DRAFT_IDLE_TTL", 2*time.Hour),

		Gzip: gzipCfg,
	}
}

// DatabaseURL cadena de conexión; vacía cuando no se configuró DB_HOST
func (c Config) DatabaseURL() string {
	if c.DBHost == "" {
		return ""
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
