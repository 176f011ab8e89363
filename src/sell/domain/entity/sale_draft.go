package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftStatus estado del borrador de venta
type DraftStatus string

const (
	DraftEditing    DraftStatus = "editing"
	DraftSubmitting DraftStatus = "submitting"
	DraftSubmitted  DraftStatus = "submitted"
)

// SaleLineItem línea del detalle. UnitPrice es referencial (solo para mostrar
// totales) y nunca se envía al back-office.
type SaleLineItem struct {
	ProductID      int64            `json:"producto_id"`
	Quantity       int              `json:"cantidad"`
	UnitPrice      decimal.Decimal  `json:"precio_unitario"`
	DiscountAmount *decimal.Decimal `json:"monto_descuento"`
}

// LineItemPatch cambios parciales sobre una línea; los campos nil no se tocan
type LineItemPatch struct {
	ProductID      *int64
	Quantity       *int
	UnitPrice      *decimal.Decimal
	DiscountAmount *decimal.Decimal
}

// DraftHeaderPatch cambios parciales sobre la cabecera del borrador.
// PointOfSaleID = 0 quita el punto de venta.
type DraftHeaderPatch struct {
	CustomerID           *int64
	BranchID             *int64
	PointOfSaleID        *int64
	SectorDocumentCode   *int
	EconomicActivityCode *int
	PaymentMethodCode    *int
	CurrencyCode         *int
	ExchangeRate         *decimal.Decimal
	AdditionalDiscount   *decimal.Decimal
	GiftCardAmount       *decimal.Decimal
}

// SaleDraft borrador de venta que respalda el formulario de venta.
// Vive mientras dura la edición; no se persiste.
type SaleDraft struct {
	ID                   uuid.UUID        `json:"id"`
	TenantID             int64            `json:"empresa_id"`
	UserID               int64            `json:"usuario_id"`
	CustomerID           int64            `json:"cliente_id"`
	BranchID             int64            `json:"sucursal_id"`
	PointOfSaleID        *int64           `json:"punto_venta_id"`
	SectorDocumentCode   int              `json:"codigo_documento_sector_sin"`
	EconomicActivityCode int              `json:"codigo_actividad_economica_sin"`
	PaymentMethodCode    int              `json:"codigo_metodo_pago_sin"`
	CurrencyCode         int              `json:"codigo_moneda_sin"`
	ExchangeRate         decimal.Decimal  `json:"tipo_cambio_sin"`
	AdditionalDiscount   *decimal.Decimal `json:"descuento_adicional"`
	GiftCardAmount       *decimal.Decimal `json:"monto_gift_card"`
	Items                []SaleLineItem   `json:"detalle"`
	Status               DraftStatus      `json:"status"`
	Dirty                bool             `json:"dirty"`
	SaleID               int64            `json:"venta_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// NewSaleDraft crea un borrador vacío para la empresa. El tipo de cambio
// arranca en 1 como en el formulario.
func NewSaleDraft(tenantID, userID int64) (*SaleDraft, error) {
	if tenantID == 0 {
		return nil, ErrTenantIDRequired
	}
	now := time.Now()
	return &SaleDraft{
		ID:           uuid.New(),
		TenantID:     tenantID,
		UserID:       userID,
		ExchangeRate: decimal.NewFromInt(1),
		Items:        []SaleLineItem{},
		Status:       DraftEditing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// EnsureEditable falla si el borrador está enviándose o ya fue enviado
func (d *SaleDraft) EnsureEditable() error {
	switch d.Status {
	case DraftSubmitting:
		return ErrDraftSubmitting
	case DraftSubmitted:
		return ErrDraftSubmitted
	}
	return nil
}

// ApplyHeader aplica cambios de cabecera
func (d *SaleDraft) ApplyHeader(p DraftHeaderPatch) error {
	if p.ExchangeRate != nil && p.ExchangeRate.IsNegative() {
		return ErrInvalidExchangeRate
	}
	if p.AdditionalDiscount != nil && p.AdditionalDiscount.IsNegative() {
		return ErrInvalidDiscount
	}
	if p.GiftCardAmount != nil && p.GiftCardAmount.IsNegative() {
		return ErrInvalidDiscount
	}

	if p.CustomerID != nil {
		d.CustomerID = *p.CustomerID
	}
	if p.BranchID != nil {
		d.BranchID = *p.BranchID
	}
	if p.PointOfSaleID != nil {
		if *p.PointOfSaleID == 0 {
			d.PointOfSaleID = nil
		} else {
			v := *p.PointOfSaleID
			d.PointOfSaleID = &v
		}
	}
	if p.SectorDocumentCode != nil {
		d.SectorDocumentCode = *p.SectorDocumentCode
	}
	if p.EconomicActivityCode != nil {
		d.EconomicActivityCode = *p.EconomicActivityCode
	}
	if p.PaymentMethodCode != nil {
		d.PaymentMethodCode = *p.PaymentMethodCode
	}
	if p.CurrencyCode != nil {
		d.CurrencyCode = *p.CurrencyCode
	}
	if p.ExchangeRate != nil {
		d.ExchangeRate = *p.ExchangeRate
	}
	if p.AdditionalDiscount != nil {
		v := *p.AdditionalDiscount
		d.AdditionalDiscount = &v
	}
	if p.GiftCardAmount != nil {
		v := *p.GiftCardAmount
		d.GiftCardAmount = &v
	}
	d.touch()
	return nil
}

// HasItem indica si index es una posición válida del detalle
func (d *SaleDraft) HasItem(index int) bool {
	return index >= 0 && index < len(d.Items)
}

// AddItem agrega una línea vacía al final
func (d *SaleDraft) AddItem() int {
	d.Items = append(d.Items, SaleLineItem{})
	d.touch()
	return len(d.Items) - 1
}

// UpdateItem fusiona patch sobre la línea index. index debe ser válido.
// Precio y descuento negativos se rechazan sin modificar la línea.
func (d *SaleDraft) UpdateItem(index int, patch LineItemPatch) error {
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return ErrInvalidUnitPrice
	}
	if patch.DiscountAmount != nil && patch.DiscountAmount.IsNegative() {
		return ErrInvalidDiscount
	}

	item := d.Items[index]
	if patch.ProductID != nil {
		item.ProductID = *patch.ProductID
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.DiscountAmount != nil {
		v := *patch.DiscountAmount
		item.DiscountAmount = &v
	}
	d.Items[index] = item
	d.touch()
	return nil
}

// RemoveItem elimina la línea index conservando el orden del resto
func (d *SaleDraft) RemoveItem(index int) {
	items := make([]SaleLineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	d.Items = items
	d.touch()
}

// SelectProduct asigna el producto a la línea y resuelve su precio contra el
// catálogo; un producto desconocido queda con precio 0.
func (d *SaleDraft) SelectProduct(index int, productID int64, catalog ProductCatalog) error {
	price, _ := catalog.PriceOf(productID)
	return d.UpdateItem(index, LineItemPatch{ProductID: &productID, UnitPrice: &price})
}

// Validate aplica las reglas del formulario antes de enviar
func (d *SaleDraft) Validate() error {
	if len(d.Items) == 0 {
		return ErrDraftHasNoItems
	}

	fields := map[string]string{}
	if d.CustomerID < 1 {
		fields["clienteId"] = "Seleccione cliente"
	}
	if d.BranchID < 1 {
		fields["sucursalId"] = "Seleccione sucursal"
	}
	if d.SectorDocumentCode < 1 {
		fields["codigoDocumentoSectorSin"] = "Seleccione documento sector"
	}
	if d.EconomicActivityCode < 1 {
		fields["codigoActividadEconomicaSin"] = "Seleccione actividad económica"
	}
	if d.PaymentMethodCode < 1 {
		fields["codigoMetodoPagoSin"] = "Seleccione método de pago"
	}
	if d.CurrencyCode < 1 {
		fields["codigoMonedaSin"] = "Seleccione moneda"
	}
	if d.ExchangeRate.IsNegative() {
		fields["tipoCambioSin"] = "Ingrese tipo de cambio"
	}
	for i, item := range d.Items {
		if item.ProductID < 1 {
			fields[detailField(i, "productoId")] = "Seleccione producto"
		}
		if item.Quantity < 1 {
			fields[detailField(i, "cantidad")] = "Cantidad > 0"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// BeginSubmit valida y pasa el borrador a submitting
func (d *SaleDraft) BeginSubmit() error {
	if err := d.EnsureEditable(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	d.Status = DraftSubmitting
	return nil
}

// CompleteSubmit registra el id asignado por el back-office
func (d *SaleDraft) CompleteSubmit(saleID int64) {
	d.Status = DraftSubmitted
	d.SaleID = saleID
	d.Dirty = false
	d.UpdatedAt = time.Now()
}

// AbortSubmit vuelve a edición conservando los datos para reintentar
func (d *SaleDraft) AbortSubmit() {
	d.Status = DraftEditing
	d.UpdatedAt = time.Now()
}

// Clone copia profunda para entregar fuera del store
func (d *SaleDraft) Clone() *SaleDraft {
	c := *d
	c.PointOfSaleID = cloneInt64(d.PointOfSaleID)
	c.AdditionalDiscount = cloneDecimal(d.AdditionalDiscount)
	c.GiftCardAmount = cloneDecimal(d.GiftCardAmount)
	c.Items = make([]SaleLineItem, len(d.Items))
	for i, item := range d.Items {
		item.DiscountAmount = cloneDecimal(item.DiscountAmount)
		c.Items[i] = item
	}
	return &c
}

func (d *SaleDraft) touch() {
	d.Dirty = true
	d.UpdatedAt = time.Now()
}

func detailField(index int, name string) string {
	return "detalle." + strconv.Itoa(index) + "." + name
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
