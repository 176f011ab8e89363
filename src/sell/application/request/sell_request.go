package request

import (
	"sell/src/sell/domain/entity"

	"github.com/shopspring/decimal"
)

// Actor usuario autenticado que opera sobre el flujo de venta
type Actor struct {
	TenantID  int64
	UserID    int64
	RoleID    int64
	AuthToken string // header Authorization tal cual llegó, se reenvía al back-office
	Verified  bool   // firma del token verificada
}

// UpdateDraftRequest cambios de cabecera del borrador; los campos ausentes no se tocan.
// punto_venta_id = 0 quita el punto de venta.
type UpdateDraftRequest struct {
	CustomerID           *int64           `json:"cliente_id"`
	BranchID             *int64           `json:"sucursal_id"`
	PointOfSaleID        *int64           `json:"punto_venta_id"`
	SectorDocumentCode   *int             `json:"codigo_documento_sector_sin"`
	EconomicActivityCode *int             `json:"codigo_actividad_economica_sin"`
	PaymentMethodCode    *int             `json:"codigo_metodo_pago_sin"`
	CurrencyCode         *int             `json:"codigo_moneda_sin"`
	ExchangeRate         *decimal.Decimal `json:"tipo_cambio_sin"`
	AdditionalDiscount   *decimal.Decimal `json:"descuento_adicional"`
	GiftCardAmount       *decimal.Decimal `json:"monto_gift_card"`
}

// ToPatch convierte el request en el patch de dominio
func (r UpdateDraftRequest) ToPatch() entity.DraftHeaderPatch {
	return entity.DraftHeaderPatch{
		CustomerID:           r.CustomerID,
		BranchID:             r.BranchID,
		PointOfSaleID:        r.PointOfSaleID,
		SectorDocumentCode:   r.SectorDocumentCode,
		EconomicActivityCode: r.EconomicActivityCode,
		PaymentMethodCode:    r.PaymentMethodCode,
		CurrencyCode:         r.CurrencyCode,
		ExchangeRate:         r.ExchangeRate,
		AdditionalDiscount:   r.AdditionalDiscount,
		GiftCardAmount:       r.GiftCardAmount,
	}
}

// UpdateLineItemRequest cambios parciales de una línea del detalle
type UpdateLineItemRequest struct {
	ProductID      *int64           `json:"producto_id"`
	Quantity       *int             `json:"cantidad" binding:"omitempty,gte=0"`
	UnitPrice      *decimal.Decimal `json:"precio_unitario"`
	DiscountAmount *decimal.Decimal `json:"monto_descuento"`
}

// ToPatch convierte el request en el patch de dominio
func (r UpdateLineItemRequest) ToPatch() entity.LineItemPatch {
	return entity.LineItemPatch{
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		DiscountAmount: r.DiscountAmount,
	}
}

// SelectProductRequest producto elegido para una línea
type SelectProductRequest struct {
	ProductID int64 `json:"producto_id" binding:"required,gt=0"`
}
