package entity

import "github.com/shopspring/decimal"

// SaleDetail línea de una venta registrada
type SaleDetail struct {
	ProductoID     int64            `json:"productoId"`
	Cantidad       int              `json:"cantidad"`
	MontoDescuento *decimal.Decimal `json:"montoDescuento,omitempty"`
}

// Sale venta registrada en el back-office (listado y detalle)
type Sale struct {
	ID                          int64            `json:"id"`
	ClienteID                   int64            `json:"clienteId"`
	SucursalID                  int64            `json:"sucursalId"`
	PuntoVentaID                *int64           `json:"puntoVentaId"`
	CodigoDocumentoSectorSin    int              `json:"codigoDocumentoSectorSin"`
	CodigoActividadEconomicaSin int              `json:"codigoActividadEconomicaSin"`
	CodigoMetodoPagoSin         int              `json:"codigoMetodoPagoSin"`
	CodigoMonedaSin             int              `json:"codigoMonedaSin"`
	TipoCambioSin               decimal.Decimal  `json:"tipoCambioSin"`
	DescuentoAdicional          *decimal.Decimal `json:"descuentoAdicional,omitempty"`
	MontoGiftCard               *decimal.Decimal `json:"montoGiftCard,omitempty"`
	Detalle                     []SaleDetail     `json:"detalle"`
	MontoTotal                  decimal.Decimal  `json:"montoTotal"`
	MontoTotalMoneda            decimal.Decimal  `json:"montoTotalMoneda"`
	Activo                      bool             `json:"activo"`
	FechaEmision                string           `json:"fechaEmision"`
	CreatedBy                   *int64           `json:"createdBy,omitempty"`
	UpdatedBy                   *int64           `json:"updatedBy,omitempty"`
	CreatedAt                   string           `json:"createdAt"`
	UpdatedAt                   string           `json:"updatedAt"`
}

// CreatedSale respuesta mínima del alta de venta; solo se usa el id asignado
type CreatedSale struct {
	ID int64 `json:"id"`
}
