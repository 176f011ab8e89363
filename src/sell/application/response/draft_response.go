package response

import (
	"time"

	"sell/src/sell/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemResponse línea del detalle con su subtotal referencial
type LineItemResponse struct {
	Index          int              `json:"index"`
	ProductID      int64            `json:"producto_id"`
	Quantity       int              `json:"cantidad"`
	UnitPrice      string           `json:"precio_unitario"`
	DiscountAmount *decimal.Decimal `json:"monto_descuento"`
	Subtotal       string           `json:"subtotal"`
}

// TotalsResponse totales formateados a 2 decimales
type TotalsResponse struct {
	ItemCount      int    `json:"items"`
	Subtotal       string `json:"subtotal"`
	LineDiscounts  string `json:"descuentos_linea"`
	TotalDiscount  string `json:"descuentos"`
	GiftCard       string `json:"gift_card"`
	EstimatedTotal string `json:"total_estimado"`
}

// DraftResponse estado completo del formulario de venta
type DraftResponse struct {
	ID                   uuid.UUID            `json:"id"`
	Status               entity.DraftStatus   `json:"status"`
	Dirty                bool                 `json:"dirty"`
	CustomerID           int64                `json:"cliente_id"`
	BranchID             int64                `json:"sucursal_id"`
	PointOfSaleID        *int64               `json:"punto_venta_id"`
	SectorDocumentCode   int                  `json:"codigo_documento_sector_sin"`
	EconomicActivityCode int                  `json:"codigo_actividad_economica_sin"`
	PaymentMethodCode    int                  `json:"codigo_metodo_pago_sin"`
	CurrencyCode         int                  `json:"codigo_moneda_sin"`
	ExchangeRate         decimal.Decimal      `json:"tipo_cambio_sin"`
	AdditionalDiscount   *decimal.Decimal     `json:"descuento_adicional"`
	GiftCardAmount       *decimal.Decimal     `json:"monto_gift_card"`
	Items                []LineItemResponse   `json:"detalle"`
	Totals               TotalsResponse       `json:"totales"`
	VisibleFields        entity.VisibleFields `json:"campos_visibles"`
	SaleID               int64                `json:"venta_id,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// NewDraftResponse arma la respuesta recalculando totales y campos visibles
func NewDraftResponse(d *entity.SaleDraft) *DraftResponse {
	totals := entity.CalculateTotals(d)

	items := make([]LineItemResponse, 0, len(d.Items))
	for i, item := range d.Items {
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, LineItemResponse{
			Index:          i,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.StringFixed(entity.MoneyPlaces),
			DiscountAmount: item.DiscountAmount,
			Subtotal:       subtotal.StringFixed(entity.MoneyPlaces),
		})
	}

	return &DraftResponse{
		ID:                   d.ID,
		Status:               d.Status,
		Dirty:                d.Dirty,
		CustomerID:           d.CustomerID,
		BranchID:             d.BranchID,
		PointOfSaleID:        d.PointOfSaleID,
		SectorDocumentCode:   d.SectorDocumentCode,
		EconomicActivityCode: d.EconomicActivityCode,
		PaymentMethodCode:    d.PaymentMethodCode,
		CurrencyCode:         d.CurrencyCode,
		ExchangeRate:         d.ExchangeRate,
		AdditionalDiscount:   d.AdditionalDiscount,
		GiftCardAmount:       d.GiftCardAmount,
		Items:                items,
		Totals:               NewTotalsResponse(totals),
		VisibleFields:        entity.DeriveVisibleFields(d.PaymentMethodCode),
		SaleID:               d.SaleID,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

// NewTotalsResponse formatea los totales
func NewTotalsResponse(t entity.Totals) TotalsResponse {
	return TotalsResponse{
		ItemCount:      t.ItemCount,
		Subtotal:       t.LineSubtotal.StringFixed(entity.MoneyPlaces),
		LineDiscounts:  t.LineDiscounts.StringFixed(entity.MoneyPlaces),
		TotalDiscount:  t.TotalDiscount.StringFixed(entity.MoneyPlaces),
		GiftCard:       t.GiftAmount.StringFixed(entity.MoneyPlaces),
		EstimatedTotal: t.EstimatedTotal.StringFixed(entity.MoneyPlaces),
	}
}

// SubmitSaleResponse resultado del envío de un borrador
type SubmitSaleResponse struct {
	DraftID  uuid.UUID      `json:"draft_id"`
	SaleID   int64          `json:"venta_id"`
	Replayed bool           `json:"replayed"`
	Totals   TotalsResponse `json:"totales"`
}
