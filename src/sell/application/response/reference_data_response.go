package response

import (
	"sell/src/sell/domain/entity"
)

// ProductOption opción de producto con el precio que usa el formulario
type ProductOption struct {
	entity.SelectOption
	UnitPrice string `json:"precio_unitario"`
	Unit      string `json:"unidad_medida,omitempty"`
}

// ReferenceDataResponse opciones de todos los selectores del formulario.
// Errors trae el mensaje de cada dataset que no se pudo cargar.
type ReferenceDataResponse struct {
	Branches        []entity.SelectOption `json:"sucursales"`
	PointsOfSale    []entity.SelectOption `json:"puntos_venta"`
	SectorDocuments []entity.SelectOption `json:"documentos_sector"`
	Activities      []entity.SelectOption `json:"actividades"`
	PaymentMethods  []entity.SelectOption `json:"metodos_pago"`
	Currencies      []entity.SelectOption `json:"monedas"`
	Products        []ProductOption       `json:"productos"`
	Errors          map[string]string     `json:"errors,omitempty"`
}

// NewProductOptions arma las opciones de producto
func NewProductOptions(products []entity.Product) []ProductOption {
	options := make([]ProductOption, 0, len(products))
	for _, p := range products {
		options = append(options, ProductOption{
			SelectOption: p.Option(),
			UnitPrice:    p.PrecioUnitario.StringFixed(entity.MoneyPlaces),
			Unit:         p.UnidadMedida,
		})
	}
	return options
}

// CustomerResponse tarjeta de identificación del cliente
type CustomerResponse struct {
	entity.Customer
	Option entity.SelectOption `json:"option"`
}

// NewCustomerResponse arma la tarjeta del cliente
func NewCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{Customer: c, Option: c.Option()}
}
