package controller

import (
	"log"
	"net/http"
	"strconv"

	"sell/src/sell/application/request"
	"sell/src/sell/application/usecase"

	"github.com/gin-gonic/gin"
)

// SellController maneja las peticiones HTTP del formulario de venta
type SellController struct {
	referenceUC *usecase.LoadReferenceDataUseCase
	customerUC  *usecase.CustomerUseCase
	draftUC     *usecase.DraftUseCase
	submitUC    *usecase.SubmitSaleUseCase
}

// NewSellController crea una nueva instancia del controlador
func NewSellController(
	referenceUC *usecase.LoadReferenceDataUseCase,
	customerUC *usecase.CustomerUseCase,
	draftUC *usecase.DraftUseCase,
	submitUC *usecase.SubmitSaleUseCase,
) *SellController {
	return &SellController{
		referenceUC: referenceUC,
		customerUC:  customerUC,
		draftUC:     draftUC,
		submitUC:    submitUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SellController) RegisterRoutes(router *gin.RouterGroup) {
	sell := router.Group("/sell")
	{
		sell.GET("/reference-data", c.ReferenceData)
		sell.GET("/customers", c.SearchCustomers)
		sell.GET("/customers/:customer_id", c.GetCustomer)

		sell.POST("/drafts", c.CreateDraft)
		sell.GET("/drafts/:draft_id", c.GetDraft)
		sell.PATCH("/drafts/:draft_id", c.UpdateDraft)
		sell.DELETE("/drafts/:draft_id", c.DiscardDraft)
		sell.POST("/drafts/:draft_id/items", c.AddItem)
		sell.PATCH("/drafts/:draft_id/items/:index", c.UpdateItem)
		sell.DELETE("/drafts/:draft_id/items/:index", c.RemoveItem)
		sell.PUT("/drafts/:draft_id/items/:index/product", c.SelectProduct)
		sell.POST("/drafts/:draft_id/submit", c.Submit)
	}

	log.Println("Rutas Sell disponibles:")
	log.Println("  GET    /api/v1/sell/reference-data?codigo_documento_sector_sin=N")
	log.Println("  GET    /api/v1/sell/customers?q=")
	log.Println("  GET    /api/v1/sell/customers/:customer_id")
	log.Println("  POST   /api/v1/sell/drafts")
	log.Println("  GET    /api/v1/sell/drafts/:draft_id")
	log.Println("  PATCH  /api/v1/sell/drafts/:draft_id")
	log.Println("  DELETE /api/v1/sell/drafts/:draft_id[?force=true]")
	log.Println("  POST   /api/v1/sell/drafts/:draft_id/items")
	log.Println("  PATCH  /api/v1/sell/drafts/:draft_id/items/:index")
	log.Println("  DELETE /api/v1/sell/drafts/:draft_id/items/:index")
	log.Println("  PUT    /api/v1/sell/drafts/:draft_id/items/:index/product")
	log.Println("  POST   /api/v1/sell/drafts/:draft_id/submit  ⭐ (Alta de venta)")
}

// ReferenceData opciones de todos los selectores del formulario
func (c *SellController) ReferenceData(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	documentCode := 0
	if raw := ctx.Query("codigo_documento_sector_sin"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid codigo_documento_sector_sin format"})
			return
		}
		documentCode = code
	}

	resp, err := c.referenceUC.Execute(ctx.Request.Context(), actor, documentCode)
	if err != nil {
		respondError(ctx, "loading reference data", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SearchCustomers busca clientes por número de documento
func (c *SellController) SearchCustomers(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	customers, err := c.customerUC.Search(ctx.Request.Context(), actor, ctx.Query("q"))
	if err != nil {
		respondError(ctx, "searching customers", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":       customers,
		"total_count": len(customers),
	})
}

// GetCustomer tarjeta del cliente seleccionado
func (c *SellController) GetCustomer(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := intParam(ctx, "customer_id")
	if !ok {
		return
	}

	customer, err := c.customerUC.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		respondError(ctx, "getting customer", err)
		return
	}
	ctx.JSON(http.StatusOK, customer)
}

// CreateDraft abre un borrador de venta
func (c *SellController) CreateDraft(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	draft, err := c.draftUC.Create(ctx.Request.Context(), actor)
	if err != nil {
		respondError(ctx, "creating draft", err)
		return
	}
	ctx.JSON(http.StatusCreated, draft)
}

// GetDraft estado del borrador con totales y campos visibles
func (c *SellController) GetDraft(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}

	draft, err := c.draftUC.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		respondError(ctx, "getting draft", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// UpdateDraft cambios de cabecera
func (c *SellController) UpdateDraft(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}

	var req request.UpdateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	draft, err := c.draftUC.UpdateHeader(ctx.Request.Context(), actor, id, req)
	if err != nil {
		respondError(ctx, "updating draft", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// DiscardDraft descarta el borrador; con cambios requiere ?force=true
func (c *SellController) DiscardDraft(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}

	force := ctx.Query("force") == "true"
	if err := c.draftUC.Discard(ctx.Request.Context(), actor, id, force); err != nil {
		respondError(ctx, "discarding draft", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddItem agrega una línea vacía
func (c *SellController) AddItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}

	draft, err := c.draftUC.AddItem(ctx.Request.Context(), actor, id)
	if err != nil {
		respondError(ctx, "adding item", err)
		return
	}
	ctx.JSON(http.StatusCreated, draft)
}

// UpdateItem cambios parciales de una línea
func (c *SellController) UpdateItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}
	index, ok := intParam(ctx, "index")
	if !ok {
		return
	}

	var req request.UpdateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	draft, err := c.draftUC.UpdateItem(ctx.Request.Context(), actor, id, int(index), req)
	if err != nil {
		respondError(ctx, "updating item", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// RemoveItem elimina una línea
func (c *SellController) RemoveItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}
	index, ok := intParam(ctx, "index")
	if !ok {
		return
	}

	draft, err := c.draftUC.RemoveItem(ctx.Request.Context(), actor, id, int(index))
	if err != nil {
		respondError(ctx, "removing item", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// SelectProduct asigna un producto a la línea con su precio de catálogo
func (c *SellController) SelectProduct(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}
	index, ok := intParam(ctx, "index")
	if !ok {
		return
	}

	var req request.SelectProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	draft, err := c.draftUC.SelectProduct(ctx.Request.Context(), actor, id, int(index), req.ProductID)
	if err != nil {
		respondError(ctx, "selecting product", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// Submit envía el borrador como alta de venta
func (c *SellController) Submit(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := draftIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.submitUC.Execute(ctx.Request.Context(), actor, id)
	if err != nil {
		respondError(ctx, "submitting sale", err)
		return
	}

	status := http.StatusCreated
	if resp.Replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}
