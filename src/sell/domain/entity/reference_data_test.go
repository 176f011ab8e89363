package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranch_UnmarshalAliasesAndLabelFallback(t *testing.T) {
	var branches []Branch
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "empresaId": 7, "nombre": "Casa Matriz"},
		{"id": "2", "empresa_id": 7}
	]`), &branches))

	require.Len(t, branches, 2)
	assert.Equal(t, SelectOption{Label: "Casa Matriz", Value: "1"}, branches[0].Option())
	assert.Equal(t, int64(7), branches[1].EmpresaID)
	assert.Equal(t, SelectOption{Label: "Sucursal 2", Value: "2"}, branches[1].Option())
}

func TestPointOfSale_LabelFallback(t *testing.T) {
	var pos PointOfSale
	require.NoError(t, json.Unmarshal([]byte(`{"id": 4, "sucursal_id": 1}`), &pos))

	assert.Equal(t, int64(1), pos.SucursalID)
	assert.Equal(t, "POS 4", pos.Option().Label)
}

func TestPaymentMethod_CodeFallsBackToID(t *testing.T) {
	var methods []PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 9, "codigoClasificador": 27, "descripcion": "GIFT-CARD"},
		{"id": 12, "descripcion_sin": "OTRO"},
		{"id": 13}
	]`), &methods))

	assert.Equal(t, SelectOption{Label: "GIFT-CARD", Value: "27"}, methods[0].Option())
	assert.Equal(t, SelectOption{Label: "OTRO", Value: "12"}, methods[1].Option())
	assert.Equal(t, "Método 13", methods[2].Option().Label)
}

func TestCurrency_Option(t *testing.T) {
	var c Currency
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "codigo_sin": 2}`), &c))

	assert.Equal(t, SelectOption{Label: "Moneda 2", Value: "2"}, c.Option())
}

func TestProduct_UnmarshalPriceAndUnit(t *testing.T) {
	var products []Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 10, "codigo": "P-10", "descripcion": "Café", "precioUnitario": "30.50",
		 "unidadMedida": {"descripcionSin": "UNIDAD (BIENES)"}},
		{"id": 11, "codigo_producto": "P-11", "descripcion": "Té", "precio_unitario": 4.75,
		 "unidad_medida": null}
	]`), &products))

	require.Len(t, products, 2)
	assert.True(t, products[0].PrecioUnitario.Equal(dec("30.50")))
	assert.Equal(t, "UNIDAD (BIENES)", products[0].UnidadMedida)
	assert.Equal(t, "P-10 – Café", products[0].Option().Label)
	assert.Equal(t, "P-11", products[1].Codigo)
	assert.True(t, products[1].PrecioUnitario.Equal(dec("4.75")))
	assert.Empty(t, products[1].UnidadMedida)
}

func TestDocumentActivityCatalog_FiltersActivitiesByDocument(t *testing.T) {
	var catalog DocumentActivityCatalog
	require.NoError(t, json.Unmarshal([]byte(`{
		"documentosSector": [
			{"codigo_sin": 1, "descripcion_sin": "FACTURA COMPRA-VENTA"},
			{"codigoSin": 24}
		],
		"documentosActividadesSector": [
			{"id": 1, "codigo_documento_sector_sin": 1, "codigo_actividad_sin": "620100", "descripcion_actividad_sin": "SOFTWARE"},
			{"id": 2, "codigoDocumentoSectorSin": 24, "codigo_actividad_sin": "471110"},
			{"id": 3, "codigo_documento_sector_sin": 1}
		]
	}`), &catalog))

	assert.Equal(t, []SelectOption{
		{Label: "FACTURA COMPRA-VENTA", Value: "1"},
		{Label: "Doc 24", Value: "24"},
	}, catalog.DocumentOptions())

	assert.Equal(t, []SelectOption{
		{Label: "SOFTWARE", Value: "620100"},
		{Label: "Act ", Value: "3"},
	}, catalog.ActivityOptions(1))

	assert.Equal(t, []SelectOption{{Label: "Act 471110", Value: "471110"}}, catalog.ActivityOptions(24))
	assert.Len(t, catalog.ActivityOptions(0), 3)
	assert.Empty(t, catalog.ActivityOptions(99))
}

func TestCustomer_Option(t *testing.T) {
	var c Customer
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 5, "numeroDocumentoIdentidad": "1234567", "razonSocial": "PEREZ",
		"email": "p@example.com"
	}`), &c))

	assert.Equal(t, SelectOption{Label: "1234567 – PEREZ", Value: "5"}, c.Option())
	assert.Equal(t, "p@example.com", c.Email)
}
