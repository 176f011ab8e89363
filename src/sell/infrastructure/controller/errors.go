package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"sell/src/sell/application/request"
	"sell/src/sell/domain/entity"
	"sell/src/sell/infrastructure/client"
	"sell/src/shared/infrastructure/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError traduce los errores de dominio y del back-office a respuestas HTTP
func respondError(ctx *gin.Context, action string, err error) {
	log.Printf("❌ Error %s: %v", action, err)

	var validation *entity.ValidationError
	if errors.As(err, &validation) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Datos inválidos",
			"fields": validation.Fields,
		})
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		ctx.JSON(apiErr.Status, gin.H{
			"error":   apiErr.Message,
			"details": "Error " + action,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "Error " + action
	switch {
	case errors.Is(err, entity.ErrDraftNotFound),
		errors.Is(err, entity.ErrLineItemNotFound),
		errors.Is(err, entity.ErrSaleNotFound),
		errors.Is(err, entity.ErrCustomerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrDraftSubmitting),
		errors.Is(err, entity.ErrDraftSubmitted),
		errors.Is(err, entity.ErrDraftDirty),
		errors.Is(err, entity.ErrDraftDiscarded):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrDraftHasNoItems),
		errors.Is(err, entity.ErrInvalidDiscount),
		errors.Is(err, entity.ErrInvalidExchangeRate),
		errors.Is(err, entity.ErrInvalidUnitPrice):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrTenantIDRequired):
		status = http.StatusBadRequest
	case errors.Is(err, client.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = client.ErrUnavailable.Error()
	case errors.Is(err, client.ErrUnexpectedEnvelope):
		status = http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	ctx.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// actorFrom arma el actor desde la sesión cargada por el middleware
func actorFrom(ctx *gin.Context) (request.Actor, bool) {
	session, ok := middleware.GetSession(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": middleware.ErrMissingToken.Error()})
		return request.Actor{}, false
	}
	return request.Actor{
		TenantID:  session.TenantID,
		UserID:    session.UserID,
		RoleID:    session.RoleID,
		AuthToken: session.Authorization,
		Verified:  session.Verified,
	}, true
}

func draftIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("draft_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft_id format"})
		return uuid.Nil, false
	}
	return id, true
}

func intParam(ctx *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || value < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return value, true
}
