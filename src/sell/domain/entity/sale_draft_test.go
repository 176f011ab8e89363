package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func newDraft(t *testing.T) *SaleDraft {
	t.Helper()
	d, err := NewSaleDraft(7, 3)
	require.NoError(t, err)
	return d
}

// completeDraft borrador listo para enviar con una línea {producto 10, 2 x 30}
func completeDraft(t *testing.T, paymentMethod int) *SaleDraft {
	t.Helper()
	d := newDraft(t)
	require.NoError(t, d.ApplyHeader(DraftHeaderPatch{
		CustomerID:           int64Ptr(1),
		BranchID:             int64Ptr(2),
		SectorDocumentCode:   intPtr(1),
		EconomicActivityCode: intPtr(620100),
		PaymentMethodCode:    intPtr(paymentMethod),
		CurrencyCode:         intPtr(1),
	}))
	i := d.AddItem()
	require.NoError(t, d.UpdateItem(i, LineItemPatch{ProductID: int64Ptr(10), Quantity: intPtr(2), UnitPrice: decPtr("30")}))
	return d
}

func TestNewSaleDraft_Defaults(t *testing.T) {
	d := newDraft(t)

	assert.Equal(t, DraftEditing, d.Status)
	assert.False(t, d.Dirty)
	assert.True(t, d.ExchangeRate.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, d.Items)
	assert.Nil(t, d.PointOfSaleID)
}

func TestNewSaleDraft_RequiresTenant(t *testing.T) {
	_, err := NewSaleDraft(0, 3)
	assert.ErrorIs(t, err, ErrTenantIDRequired)
}

func TestAddItem_AppendsEmptyLineAndMarksDirty(t *testing.T) {
	d := newDraft(t)

	assert.Equal(t, 0, d.AddItem())
	assert.Equal(t, 1, d.AddItem())

	require.Len(t, d.Items, 2)
	assert.Equal(t, SaleLineItem{}, d.Items[1])
	assert.True(t, d.Dirty)
}

func TestUpdateItem_MergesOnlyGivenFields(t *testing.T) {
	d := newDraft(t)
	d.AddItem()
	require.NoError(t, d.UpdateItem(0, LineItemPatch{ProductID: int64Ptr(5), Quantity: intPtr(3), UnitPrice: decPtr("12.5")}))

	require.NoError(t, d.UpdateItem(0, LineItemPatch{Quantity: intPtr(4)}))

	item := d.Items[0]
	assert.Equal(t, int64(5), item.ProductID)
	assert.Equal(t, 4, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(dec("12.5")))
	assert.Nil(t, item.DiscountAmount)
}

func TestRemoveItem_PreservesOrderOfOthers(t *testing.T) {
	d := newDraft(t)
	for i := 1; i <= 4; i++ {
		idx := d.AddItem()
		require.NoError(t, d.UpdateItem(idx, LineItemPatch{ProductID: int64Ptr(int64(i)), Quantity: intPtr(i)}))
	}
	before := append([]SaleLineItem(nil), d.Items...)

	d.RemoveItem(1)

	require.Len(t, d.Items, 3)
	assert.Equal(t, before[0], d.Items[0])
	assert.Equal(t, before[2], d.Items[1])
	assert.Equal(t, before[3], d.Items[2])
}

func TestRemoveItem_DoesNotAliasPreviousSlice(t *testing.T) {
	d := newDraft(t)
	d.AddItem()
	d.AddItem()
	clone := d.Clone()

	d.RemoveItem(0)

	assert.Len(t, clone.Items, 2)
	assert.Len(t, d.Items, 1)
}

func TestUpdateItem_RejectsNegativeAmounts(t *testing.T) {
	d := completeDraft(t, 1)
	before := CalculateTotals(d).EstimatedTotal.StringFixed(2)

	err := d.UpdateItem(0, LineItemPatch{DiscountAmount: decPtr("-20")})
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	err = d.UpdateItem(0, LineItemPatch{Quantity: intPtr(5), UnitPrice: decPtr("-1")})
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)

	assert.Nil(t, d.Items[0].DiscountAmount)
	assert.Equal(t, 2, d.Items[0].Quantity)
	assert.Equal(t, before, CalculateTotals(d).EstimatedTotal.StringFixed(2))
	assert.Equal(t, "60.00", before)
	assert.Empty(t, NormalizeSale(d).Detalle[0].MontoDescuento)
}

func TestSelectProduct_UsesCatalogPrice(t *testing.T) {
	catalog := NewProductCatalog([]Product{
		{ID: 10, PrecioUnitario: dec("30.00")},
		{ID: 11, PrecioUnitario: dec("4.75")},
	})
	d := newDraft(t)
	d.AddItem()

	require.NoError(t, d.SelectProduct(0, 11, catalog))

	assert.Equal(t, int64(11), d.Items[0].ProductID)
	assert.True(t, d.Items[0].UnitPrice.Equal(dec("4.75")))
}

func TestSelectProduct_UnknownProductHasZeroPrice(t *testing.T) {
	catalog := NewProductCatalog([]Product{{ID: 10, PrecioUnitario: dec("30")}})
	d := newDraft(t)
	d.AddItem()
	require.NoError(t, d.UpdateItem(0, LineItemPatch{UnitPrice: decPtr("99")}))

	require.NoError(t, d.SelectProduct(0, 404, catalog))

	assert.Equal(t, int64(404), d.Items[0].ProductID)
	assert.True(t, d.Items[0].UnitPrice.IsZero())
}

func TestApplyHeader_RejectsNegativeAmounts(t *testing.T) {
	d := newDraft(t)

	assert.ErrorIs(t, d.ApplyHeader(DraftHeaderPatch{ExchangeRate: decPtr("-1")}), ErrInvalidExchangeRate)
	assert.ErrorIs(t, d.ApplyHeader(DraftHeaderPatch{AdditionalDiscount: decPtr("-0.01")}), ErrInvalidDiscount)
	assert.ErrorIs(t, d.ApplyHeader(DraftHeaderPatch{GiftCardAmount: decPtr("-5")}), ErrInvalidDiscount)
	assert.False(t, d.Dirty)
}

func TestApplyHeader_ZeroPointOfSaleClearsIt(t *testing.T) {
	d := newDraft(t)

	require.NoError(t, d.ApplyHeader(DraftHeaderPatch{PointOfSaleID: int64Ptr(4)}))
	require.NotNil(t, d.PointOfSaleID)
	assert.Equal(t, int64(4), *d.PointOfSaleID)

	require.NoError(t, d.ApplyHeader(DraftHeaderPatch{PointOfSaleID: int64Ptr(0)}))
	assert.Nil(t, d.PointOfSaleID)
}

func TestValidate_NoItemsRejectedFirst(t *testing.T) {
	d := newDraft(t)

	err := d.Validate()

	assert.ErrorIs(t, err, ErrDraftHasNoItems)
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	d := newDraft(t)
	d.AddItem()

	err := d.Validate()

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "Seleccione cliente", validation.Fields["clienteId"])
	assert.Equal(t, "Seleccione sucursal", validation.Fields["sucursalId"])
	assert.Contains(t, validation.Fields, "codigoDocumentoSectorSin")
	assert.Contains(t, validation.Fields, "codigoActividadEconomicaSin")
	assert.Contains(t, validation.Fields, "codigoMetodoPagoSin")
	assert.Contains(t, validation.Fields, "codigoMonedaSin")
	assert.Equal(t, "Seleccione producto", validation.Fields["detalle.0.productoId"])
	assert.Equal(t, "Cantidad > 0", validation.Fields["detalle.0.cantidad"])
	assert.NotContains(t, validation.Fields, "tipoCambioSin")
}

func TestValidate_CompleteDraftPasses(t *testing.T) {
	assert.NoError(t, completeDraft(t, 1).Validate())
}

func TestSubmitLifecycle(t *testing.T) {
	d := completeDraft(t, 1)

	require.NoError(t, d.BeginSubmit())
	assert.Equal(t, DraftSubmitting, d.Status)
	assert.ErrorIs(t, d.BeginSubmit(), ErrDraftSubmitting)
	assert.ErrorIs(t, d.EnsureEditable(), ErrDraftSubmitting)

	d.AbortSubmit()
	assert.Equal(t, DraftEditing, d.Status)
	assert.True(t, d.Dirty)
	assert.Len(t, d.Items, 1)

	require.NoError(t, d.BeginSubmit())
	d.CompleteSubmit(321)
	assert.Equal(t, DraftSubmitted, d.Status)
	assert.Equal(t, int64(321), d.SaleID)
	assert.False(t, d.Dirty)
	assert.ErrorIs(t, d.EnsureEditable(), ErrDraftSubmitted)
}

func TestClone_IsDeep(t *testing.T) {
	d := completeDraft(t, 27)
	require.NoError(t, d.ApplyHeader(DraftHeaderPatch{GiftCardAmount: decPtr("50"), PointOfSaleID: int64Ptr(9)}))
	require.NoError(t, d.UpdateItem(0, LineItemPatch{DiscountAmount: decPtr("3")}))

	c := d.Clone()
	*c.GiftCardAmount = dec("1")
	*c.PointOfSaleID = 1
	*c.Items[0].DiscountAmount = dec("0")
	c.Items[0].Quantity = 99

	assert.True(t, d.GiftCardAmount.Equal(dec("50")))
	assert.Equal(t, int64(9), *d.PointOfSaleID)
	assert.True(t, d.Items[0].DiscountAmount.Equal(dec("3")))
	assert.Equal(t, 2, d.Items[0].Quantity)
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}

func TestDraft_JSONKeepsNullPointOfSale(t *testing.T) {
	raw, err := json.Marshal(newDraft(t))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"punto_venta_id":null`)
}
