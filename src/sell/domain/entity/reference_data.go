package entity

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// SelectOption opción de un selector del formulario
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Branch sucursal de la empresa
type Branch struct {
	ID        int64  `json:"id"`
	EmpresaID int64  `json:"empresa_id"`
	Nombre    string `json:"nombre"`
}

func (b *Branch) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	b.ID = f.int("id")
	b.EmpresaID = f.int("empresaId", "empresa_id")
	b.Nombre = f.str("nombre")
	return nil
}

// Option convierte la sucursal en opción de selector
func (b Branch) Option() SelectOption {
	label := b.Nombre
	if label == "" {
		label = fmt.Sprintf("Sucursal %d", b.ID)
	}
	return SelectOption{Label: label, Value: strconv.FormatInt(b.ID, 10)}
}

// PointOfSale punto de venta
type PointOfSale struct {
	ID         int64  `json:"id"`
	SucursalID int64  `json:"sucursal_id"`
	Nombre     string `json:"nombre"`
}

func (p *PointOfSale) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	p.ID = f.int("id")
	p.SucursalID = f.int("sucursalId", "sucursal_id")
	p.Nombre = f.str("nombre")
	return nil
}

func (p PointOfSale) Option() SelectOption {
	label := p.Nombre
	if label == "" {
		label = fmt.Sprintf("POS %d", p.ID)
	}
	return SelectOption{Label: label, Value: strconv.FormatInt(p.ID, 10)}
}

// SectorDocument documento sector SIN habilitado para la empresa
type SectorDocument struct {
	CodigoSin   int    `json:"codigo_sin"`
	Descripcion string `json:"descripcion"`
}

func (d *SectorDocument) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	d.CodigoSin = int(f.int("codigo_sin", "codigoSin"))
	d.Descripcion = f.str("descripcion_sin", "descripcionSin", "descripcion")
	return nil
}

func (d SectorDocument) Option() SelectOption {
	label := d.Descripcion
	if label == "" {
		label = fmt.Sprintf("Doc %d", d.CodigoSin)
	}
	return SelectOption{Label: label, Value: strconv.Itoa(d.CodigoSin)}
}

// DocumentActivity par documento sector / actividad económica homologado
type DocumentActivity struct {
	ID                       int64  `json:"id"`
	CodigoDocumentoSectorSin int    `json:"codigo_documento_sector_sin"`
	CodigoActividadSin       string `json:"codigo_actividad_sin"`
	Descripcion              string `json:"descripcion"`
}

func (a *DocumentActivity) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	a.ID = f.int("id")
	a.CodigoDocumentoSectorSin = int(f.int("codigo_documento_sector_sin", "codigoDocumentoSectorSin"))
	a.CodigoActividadSin = f.str("codigo_actividad_sin", "codigoActividadEconomicaSin")
	a.Descripcion = f.str("descripcion_actividad_sin", "descripcion_actividad", "descripcionActividad", "descripcion")
	return nil
}

func (a DocumentActivity) Option() SelectOption {
	label := a.Descripcion
	if label == "" {
		label = "Act " + a.CodigoActividadSin
	}
	value := a.CodigoActividadSin
	if value == "" {
		value = strconv.FormatInt(a.ID, 10)
	}
	return SelectOption{Label: label, Value: value}
}

// DocumentActivityCatalog respuesta de homologación documentos/actividades de una empresa
type DocumentActivityCatalog struct {
	Documents  []SectorDocument   `json:"documentosSector"`
	Activities []DocumentActivity `json:"documentosActividadesSector"`
}

// DocumentOptions opciones de documento sector
func (c DocumentActivityCatalog) DocumentOptions() []SelectOption {
	options := make([]SelectOption, 0, len(c.Documents))
	for _, d := range c.Documents {
		options = append(options, d.Option())
	}
	return options
}

// ActivityOptions actividades filtradas por documento sector; sin documento
// seleccionado (0) se listan todas
func (c DocumentActivityCatalog) ActivityOptions(documentCode int) []SelectOption {
	options := make([]SelectOption, 0, len(c.Activities))
	for _, a := range c.Activities {
		if documentCode != 0 && a.CodigoDocumentoSectorSin != documentCode {
			continue
		}
		options = append(options, a.Option())
	}
	return options
}

// PaymentMethod método de pago de la tabla de sincronización SIN
type PaymentMethod struct {
	ID          int64  `json:"id"`
	CodigoSin   int    `json:"codigo_sin"`
	Descripcion string `json:"descripcion"`
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	m.ID = f.int("id")
	m.CodigoSin = int(f.int("codigoSin", "codigo_sin", "codigoClasificador", "codigo_clasificador"))
	m.Descripcion = f.str("descripcion", "descripcionSin", "descripcion_sin", "nombre")
	return nil
}

// Code código usado en el formulario (codigoSin, o el id cuando falta)
func (m PaymentMethod) Code() int64 {
	if m.CodigoSin != 0 {
		return int64(m.CodigoSin)
	}
	return m.ID
}

func (m PaymentMethod) Option() SelectOption {
	label := m.Descripcion
	if label == "" {
		label = fmt.Sprintf("Método %d", m.Code())
	}
	return SelectOption{Label: label, Value: strconv.FormatInt(m.Code(), 10)}
}

// Currency moneda de la tabla de sincronización SIN
type Currency struct {
	ID          int64  `json:"id"`
	CodigoSin   int    `json:"codigo_sin"`
	Descripcion string `json:"descripcion"`
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	c.ID = f.int("id")
	c.CodigoSin = int(f.int("codigoSin", "codigo_sin", "codigoClasificador", "codigo_clasificador"))
	c.Descripcion = f.str("descripcion", "descripcionSin", "descripcion_sin", "nombre")
	return nil
}

func (c Currency) Code() int64 {
	if c.CodigoSin != 0 {
		return int64(c.CodigoSin)
	}
	return c.ID
}

func (c Currency) Option() SelectOption {
	label := c.Descripcion
	if label == "" {
		label = fmt.Sprintf("Moneda %d", c.Code())
	}
	return SelectOption{Label: label, Value: strconv.FormatInt(c.Code(), 10)}
}

// Product producto del catálogo de la empresa
type Product struct {
	ID             int64           `json:"id"`
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	UnidadMedida   string          `json:"unidad_medida,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	p.ID = f.int("id")
	p.Codigo = f.str("codigo", "codigoProducto", "codigo_producto")
	p.Descripcion = f.str("descripcion")
	p.PrecioUnitario = f.decimal("precioUnitario", "precio_unitario", "precio")
	p.UnidadMedida = ""
	for _, key := range []string{"unidadMedida", "unidad_medida"} {
		if um := f.object(key); um != nil {
			p.UnidadMedida = um.str("descripcionSin", "descripcion_sin", "descripcion")
			break
		}
	}
	return nil
}

func (p Product) Option() SelectOption {
	code := p.Codigo
	if code == "" {
		code = strconv.FormatInt(p.ID, 10)
	}
	return SelectOption{Label: code + " – " + p.Descripcion, Value: strconv.FormatInt(p.ID, 10)}
}

// ProductCatalog catálogo indexado por id para resolver precios de las líneas
type ProductCatalog struct {
	byID map[int64]Product
}

// NewProductCatalog indexa los productos por id
func NewProductCatalog(products []Product) ProductCatalog {
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return ProductCatalog{byID: byID}
}

// PriceOf retorna el precio unitario del producto, o 0 y false si no existe
func (c ProductCatalog) PriceOf(productID int64) (decimal.Decimal, bool) {
	p, ok := c.byID[productID]
	if !ok {
		return decimal.Zero, false
	}
	return p.PrecioUnitario, true
}

// Customer cliente para la tarjeta de identificación
type Customer struct {
	ID                       int64  `json:"id"`
	NumeroDocumentoIdentidad string `json:"numero_documento_identidad"`
	Complemento              string `json:"complemento,omitempty"`
	RazonSocial              string `json:"razon_social"`
	TipoDocumentoIdentidad   string `json:"tipo_documento_identidad"`
	Email                    string `json:"email,omitempty"`
	Celular                  string `json:"celular,omitempty"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	f, err := decodeAliasFields(data)
	if err != nil {
		return err
	}
	c.ID = f.int("id")
	c.NumeroDocumentoIdentidad = f.str("numeroDocumentoIdentidad", "numero_documento_identidad")
	c.Complemento = f.str("complemento")
	c.RazonSocial = f.str("razonSocial", "razon_social")
	c.TipoDocumentoIdentidad = f.str("tipoDocumentoIdentidadDescripcion", "codigoDocumentoIdentidadSin", "codigo_documento_identidad_sin")
	c.Email = f.str("email")
	c.Celular = f.str("celular")
	return nil
}

func (c Customer) Option() SelectOption {
	return SelectOption{
		Label: c.NumeroDocumentoIdentidad + " – " + c.RazonSocial,
		Value: strconv.FormatInt(c.ID, 10),
	}
}
