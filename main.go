package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	apiConfig "sell/src/api/config"
	sellUseCase "sell/src/sell/application/usecase"
	"sell/src/sell/domain/port"
	sellCache "sell/src/sell/infrastructure/cache"
	sellClient "sell/src/sell/infrastructure/client"
	sellController "sell/src/sell/infrastructure/controller"
	sellPersistence "sell/src/sell/infrastructure/persistence"
	sharedConfig "sell/src/shared/infrastructure/config"
	"sell/src/shared/infrastructure/middleware"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("🚀 Sell Service - Iniciando...")

	cfg := sharedConfig.Load()

	// Configurar el router con Gin
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.PrometheusEnabled {
		log.Println("Registering /metrics endpoint for Sell service")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for Sell service")
	}

	sharedConfig.SetupSharedMiddleware(router, cfg.Gzip)

	db := openDatabase(cfg)
	if db != nil {
		defer db.Close()
	}

	v1 := router.Group("/api/v1")

	apiCfg := apiConfig.DefaultAPIConfig()
	apiCfg.DB = db
	apiConfig.SetupAPIModule(router, v1, apiCfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	setupSellModule(ctx, v1, cfg, db)

	log.Printf("✅ Servidor Sell Service iniciado en http://localhost:%s", cfg.Port)
	log.Printf("✅ Back-office: %s (timeout %s)", cfg.BackofficeAPIURL, cfg.UpstreamTimeout)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

// openDatabase conecta la bitácora de envíos. Es opcional: sin DB_HOST o sin
// conexión se usa la bitácora en memoria.
func openDatabase(cfg sharedConfig.Config) *sql.DB {
	connStr := cfg.DatabaseURL()
	if connStr == "" {
		log.Println("⚠️  DB_HOST not set, submission log kept in memory")
		return nil
	}

	log.Printf("Intentando conectar a %s en %s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		log.Println("⚠️  Continuando con bitácora en memoria")
		return nil
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
		log.Println("⚠️  Continuando con bitácora en memoria")
		db.Close()
		return nil
	}

	log.Printf("✅ Conexión a %s establecida con éxito", cfg.DBName)
	return db
}

// setupSellModule configura el módulo Sell
func setupSellModule(ctx context.Context, router *gin.RouterGroup, cfg sharedConfig.Config, db *sql.DB) {
	log.Println("Configurando módulo Sell...")

	backoffice := sellClient.NewBackofficeClient(cfg.BackofficeAPIURL, cfg.UpstreamTimeout)
	referenceCache := sellCache.NewReferenceCache()

	drafts := sellPersistence.NewDraftMemoryRepository()
	var submissions port.SubmissionRepository
	if db != nil {
		submissions = sellPersistence.NewSubmissionPostgresRepository(db)
	} else {
		submissions = sellPersistence.NewSubmissionMemoryRepository()
	}

	referenceUC := sellUseCase.NewLoadReferenceDataUseCase(backoffice, referenceCache, cfg.ReferenceTTL, cfg.ProductsTTL)
	customerUC := sellUseCase.NewCustomerUseCase(backoffice)
	draftUC := sellUseCase.NewDraftUseCase(drafts, referenceUC)
	submitUC := sellUseCase.NewSubmitSaleUseCase(backoffice, drafts, submissions)
	salesUC := sellUseCase.NewSalesUseCase(backoffice)
	submissionLogUC := sellUseCase.NewSubmissionLogUseCase(submissions)

	if cfg.JWTSecret == "" {
		log.Println("⚠️  JWT_SECRET not set, session tokens are decoded without signature verification")
		log.Println("⚠️  Submission log and reports disabled, reference cache bypassed")
	}
	secured := router.Group("", middleware.SessionMiddleware(middleware.NewTokenParser(cfg.JWTSecret)))

	sellController.NewSellController(referenceUC, customerUC, draftUC, submitUC).RegisterRoutes(secured)
	sellController.NewSalesController(salesUC, submissionLogUC).RegisterRoutes(secured)
	sellController.NewReportController(submissionLogUC).RegisterRoutes(secured)

	go purgeIdleDrafts(ctx, drafts, cfg.DraftIdleTTL)

	log.Println("Módulo Sell configurado exitosamente")
}

// purgeIdleDrafts descarta periódicamente los borradores abandonados
func purgeIdleDrafts(ctx context.Context, drafts port.DraftRepository, idleTTL time.Duration) {
	interval := idleTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			drafts.PurgeIdle(now.Add(-idleTTL))
		}
	}
}
