package controller

import (
	"log"
	"net/http"
	"time"

	"sell/src/sell/application/usecase"
	"sell/src/shared/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// ReportController reportes de envíos de ventas
type ReportController struct {
	submissionLogUC *usecase.SubmissionLogUseCase
}

// NewReportController crea una nueva instancia del controlador
func NewReportController(submissionLogUC *usecase.SubmissionLogUseCase) *ReportController {
	return &ReportController{
		submissionLogUC: submissionLogUC,
	}
}

// RegisterRoutes registra las rutas del controlador; solo administradores
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports",
		middleware.RequireVerifiedSession(),
		middleware.RequireRole(middleware.RoleSuperAdmin, middleware.RoleAdmin),
	)
	{
		reports.GET("/daily", c.DailyReport)
	}

	log.Println("Rutas Report disponibles:")
	log.Println("  GET    /api/v1/reports/daily?date=YYYY-MM-DD  (SUPER_ADMIN, ADMIN)")
}

// DailyReport resumen de envíos del día; sin date usa el día actual (UTC)
func (c *ReportController) DailyReport(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if date := ctx.Query("date"); date != "" {
		parsed, err := time.Parse(time.DateOnly, date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid date format",
				"details": "expected YYYY-MM-DD",
			})
			return
		}
		day = parsed
	}

	resp, err := c.submissionLogUC.DailyReport(ctx.Request.Context(), actor, day)
	if err != nil {
		respondError(ctx, "generating daily report", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
