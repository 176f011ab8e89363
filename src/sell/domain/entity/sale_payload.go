package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateSaleItem línea del alta de venta. Sin precio: el back-office es la
// fuente de precios.
type CreateSaleItem struct {
	ProductoID     int64       `json:"productoId"`
	Cantidad       int         `json:"cantidad"`
	MontoDescuento json.Number `json:"montoDescuento,omitempty"`
}

// CreateSalePayload cuerpo de POST /ventas
type CreateSalePayload struct {
	ClienteID                   int64            `json:"clienteId"`
	SucursalID                  int64            `json:"sucursalId"`
	PuntoVentaID                *int64           `json:"puntoVentaId"`
	CodigoDocumentoSectorSin    int              `json:"codigoDocumentoSectorSin"`
	CodigoActividadEconomicaSin int              `json:"codigoActividadEconomicaSin"`
	CodigoMetodoPagoSin         int              `json:"codigoMetodoPagoSin"`
	CodigoMonedaSin             int              `json:"codigoMonedaSin"`
	TipoCambioSin               json.Number      `json:"tipoCambioSin"`
	DescuentoAdicional          json.Number      `json:"descuentoAdicional,omitempty"`
	MontoGiftCard               json.Number      `json:"montoGiftCard,omitempty"`
	Detalle                     []CreateSaleItem `json:"detalle"`
}

// NormalizeSale arma el payload de alta a partir del borrador:
//   - quita el precio unitario de cada línea
//   - omite montoDescuento por línea si es nulo o <= 0
//   - omite descuentoAdicional si es nulo o <= 0
//   - omite montoGiftCard salvo que sea > 0 y el método de pago admita GiftCard
func NormalizeSale(d *SaleDraft) CreateSalePayload {
	payload := CreateSalePayload{
		ClienteID:                   d.CustomerID,
		SucursalID:                  d.BranchID,
		PuntoVentaID:                cloneInt64(d.PointOfSaleID),
		CodigoDocumentoSectorSin:    d.SectorDocumentCode,
		CodigoActividadEconomicaSin: d.EconomicActivityCode,
		CodigoMetodoPagoSin:         d.PaymentMethodCode,
		CodigoMonedaSin:             d.CurrencyCode,
		TipoCambioSin:               json.Number(d.ExchangeRate.String()),
		Detalle:                     make([]CreateSaleItem, 0, len(d.Items)),
	}

	for _, item := range d.Items {
		payload.Detalle = append(payload.Detalle, CreateSaleItem{
			ProductoID:     item.ProductID,
			Cantidad:       item.Quantity,
			MontoDescuento: positiveAmount(item.DiscountAmount),
		})
	}

	payload.DescuentoAdicional = positiveAmount(d.AdditionalDiscount)
	if ShowsGiftFields(d.PaymentMethodCode) {
		payload.MontoGiftCard = positiveAmount(d.GiftCardAmount)
	}

	return payload
}

// positiveAmount retorna el monto como número JSON, o vacío (omitido) si es
// nulo o no positivo
func positiveAmount(v *decimal.Decimal) json.Number {
	if v == nil || !v.IsPositive() {
		return ""
	}
	return json.Number(v.String())
}
