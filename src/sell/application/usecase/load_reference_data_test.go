package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReferenceData_AllDatasets(t *testing.T) {
	f := newFixture()

	resp, err := f.reference.Execute(context.Background(), testActor, 0)

	require.NoError(t, err)
	assert.Nil(t, resp.Errors)
	require.Len(t, resp.Branches, 1)
	assert.Equal(t, "Casa Matriz", resp.Branches[0].Label)
	require.Len(t, resp.PaymentMethods, 1)
	assert.Equal(t, "1", resp.PaymentMethods[0].Value)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "P-10 – Café", resp.Products[0].Label)
	assert.Equal(t, "30.00", resp.Products[0].UnitPrice)
}

func TestLoadReferenceData_PartialFailureKeepsOtherDatasets(t *testing.T) {
	f := newFixture()
	f.api.currenciesErr = errors.New("sin conexión")

	resp, err := f.reference.Execute(context.Background(), testActor, 0)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{DatasetCurrencies: "sin conexión"}, resp.Errors)
	assert.Empty(t, resp.Currencies)
	assert.NotNil(t, resp.Currencies)
	assert.Len(t, resp.Branches, 1)
}

func TestLoadReferenceData_AllFailing(t *testing.T) {
	f := newFixture()
	boom := errors.New("sin conexión")
	f.api.failAll = boom

	resp, err := f.reference.Execute(context.Background(), testActor, 0)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, resp)
}

func TestLoadReferenceData_UsesCache(t *testing.T) {
	f := newFixture()

	_, err := f.reference.Execute(context.Background(), testActor, 0)
	require.NoError(t, err)
	_, err = f.reference.Execute(context.Background(), testActor, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, f.api.count("branches"))
	assert.Equal(t, 1, f.api.count("products"))
}

func TestLoadReferenceData_UnverifiedSessionBypassesCache(t *testing.T) {
	f := newFixture()
	_, err := f.reference.Execute(context.Background(), testActor, 0)
	require.NoError(t, err)

	forged := testActor
	forged.Verified = false
	forged.AuthToken = "Bearer forged"
	_, err = f.reference.Execute(context.Background(), forged, 0)
	require.NoError(t, err)
	_, err = f.reference.Execute(context.Background(), forged, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, f.api.count("branches"))
	assert.Equal(t, 3, f.api.count("products"))

	_, err = f.reference.Execute(context.Background(), testActor, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, f.api.count("products"))
}

func TestLoadReferenceData_FailuresAreRetried(t *testing.T) {
	f := newFixture()
	f.api.branchesErr = errors.New("timeout")

	_, err := f.reference.Branches(context.Background(), testActor)
	require.Error(t, err)

	f.api.branchesErr = nil
	branches, err := f.reference.Branches(context.Background(), testActor)
	require.NoError(t, err)
	assert.Len(t, branches, 1)
	assert.Equal(t, 2, f.api.count("branches"))
}

func TestLoadReferenceData_NoTenantSkipsTenantDatasets(t *testing.T) {
	f := newFixture()
	actor := testActor
	actor.TenantID = 0

	resp, err := f.reference.Execute(context.Background(), actor, 0)

	require.NoError(t, err)
	assert.Empty(t, resp.Branches)
	assert.Empty(t, resp.Products)
	assert.Empty(t, resp.SectorDocuments)
	assert.Zero(t, f.api.count("branches"))
	assert.Zero(t, f.api.count("products"))
	assert.Zero(t, f.api.count("documents"))
	assert.Len(t, resp.Currencies, 1)
}

func TestLoadReferenceData_ProductCatalog(t *testing.T) {
	f := newFixture()

	catalog, err := f.reference.ProductCatalog(context.Background(), testActor)

	require.NoError(t, err)
	price, ok := catalog.PriceOf(10)
	assert.True(t, ok)
	assert.Equal(t, "30", price.String())
	_, ok = catalog.PriceOf(11)
	assert.False(t, ok)
}
