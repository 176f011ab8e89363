package controller

import (
	"log"
	"net/http"

	"sell/src/sell/application/usecase"
	"sell/src/shared/domain/criteria"
	infraCriteria "sell/src/shared/infrastructure/criteria"
	"sell/src/shared/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// SalesController ventas registradas y bitácora local de envíos
type SalesController struct {
	salesUC         *usecase.SalesUseCase
	submissionLogUC *usecase.SubmissionLogUseCase
	criteriaHelper  *infraCriteria.ControllerHelper
}

// NewSalesController crea una nueva instancia del controlador
func NewSalesController(salesUC *usecase.SalesUseCase, submissionLogUC *usecase.SubmissionLogUseCase) *SalesController {
	return &SalesController{
		salesUC:         salesUC,
		submissionLogUC: submissionLogUC,
		criteriaHelper: infraCriteria.NewControllerHelper(
			[]string{"status", "usuario_id", "venta_id", "codigo_metodo_pago_sin", "draft_id", "created_at", "total_estimado"},
			criteria.NewOrder("created_at", criteria.DESC),
			100,
		),
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SalesController) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/sales")
	{
		sales.GET("", c.ListSales)
		sales.GET("/submissions", middleware.RequireVerifiedSession(), c.ListSubmissions)
		sales.GET("/:sale_id", c.GetSale)
	}

	log.Println("Rutas Sales disponibles:")
	log.Println("  GET    /api/v1/sales")
	log.Println("  GET    /api/v1/sales/:sale_id")
	log.Println("  GET    /api/v1/sales/submissions?status[eq]=failed&sort=-created_at&limit=20")
}

// ListSales listado de ventas del back-office
func (c *SalesController) ListSales(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	resp, err := c.salesUC.List(ctx.Request.Context(), actor)
	if err != nil {
		respondError(ctx, "listing sales", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSale detalle de una venta
func (c *SalesController) GetSale(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := intParam(ctx, "sale_id")
	if !ok {
		return
	}

	sale, err := c.salesUC.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		respondError(ctx, "getting sale", err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// ListSubmissions bitácora de envíos de la empresa con filtros campo[op]=valor
func (c *SalesController) ListSubmissions(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	crit := c.criteriaHelper.BuildCriteriaFromQuery(ctx)
	resp, err := c.submissionLogUC.List(ctx.Request.Context(), actor, crit)
	if err != nil {
		respondError(ctx, "listing submissions", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
