package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"sell/src/sell/application/request"
	"sell/src/sell/domain/entity"
	"sell/src/sell/infrastructure/cache"
	"sell/src/sell/infrastructure/persistence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeBackoffice responde con datos fijos; cada hook nil usa el valor por defecto
type fakeBackoffice struct {
	mu    sync.Mutex
	calls map[string]int

	branchesErr   error
	currenciesErr error
	failAll       error
	products      []entity.Product
	customers     []entity.Customer
	createSale    func(ctx context.Context, payload entity.CreateSalePayload) (*entity.CreatedSale, error)
}

func newFakeBackoffice() *fakeBackoffice {
	return &fakeBackoffice{calls: map[string]int{}}
}

func (f *fakeBackoffice) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackoffice) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackoffice) FetchBranches(ctx context.Context, authToken string, empresaID int64) ([]entity.Branch, error) {
	f.record("branches")
	if f.failAll != nil {
		return nil, f.failAll
	}
	if f.branchesErr != nil {
		return nil, f.branchesErr
	}
	return []entity.Branch{{ID: 1, EmpresaID: empresaID, Nombre: "Casa Matriz"}}, nil
}

func (f *fakeBackoffice) FetchPointsOfSale(ctx context.Context, authToken string) ([]entity.PointOfSale, error) {
	f.record("pos")
	if f.failAll != nil {
		return nil, f.failAll
	}
	return []entity.PointOfSale{{ID: 2, SucursalID: 1}}, nil
}

func (f *fakeBackoffice) FetchDocumentActivities(ctx context.Context, authToken string, empresaID int64) (*entity.DocumentActivityCatalog, error) {
	f.record("documents")
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &entity.DocumentActivityCatalog{}, nil
}

func (f *fakeBackoffice) FetchPaymentMethods(ctx context.Context, authToken string) ([]entity.PaymentMethod, error) {
	f.record("payment-methods")
	if f.failAll != nil {
		return nil, f.failAll
	}
	return []entity.PaymentMethod{{ID: 1, CodigoSin: 1, Descripcion: "EFECTIVO"}}, nil
}

func (f *fakeBackoffice) FetchCurrencies(ctx context.Context, authToken string) ([]entity.Currency, error) {
	f.record("currencies")
	if f.failAll != nil {
		return nil, f.failAll
	}
	if f.currenciesErr != nil {
		return nil, f.currenciesErr
	}
	return []entity.Currency{{ID: 1, CodigoSin: 1, Descripcion: "BOLIVIANO"}}, nil
}

func (f *fakeBackoffice) FetchProducts(ctx context.Context, authToken string, empresaID int64) ([]entity.Product, error) {
	f.record("products")
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.products, nil
}

func (f *fakeBackoffice) GetCustomer(ctx context.Context, authToken string, customerID int64) (*entity.Customer, error) {
	f.record("customer")
	for _, c := range f.customers {
		if c.ID == customerID {
			return &c, nil
		}
	}
	return nil, entity.ErrCustomerNotFound
}

func (f *fakeBackoffice) SearchCustomers(ctx context.Context, authToken string, documentNumber string) ([]entity.Customer, error) {
	f.record("search-customers")
	return f.customers, nil
}

func (f *fakeBackoffice) CreateSale(ctx context.Context, authToken string, payload entity.CreateSalePayload) (*entity.CreatedSale, error) {
	f.record("create-sale")
	if f.createSale != nil {
		return f.createSale(ctx, payload)
	}
	return &entity.CreatedSale{ID: 321}, nil
}

func (f *fakeBackoffice) ListSales(ctx context.Context, authToken string) ([]entity.Sale, error) {
	f.record("list-sales")
	return nil, nil
}

func (f *fakeBackoffice) GetSale(ctx context.Context, authToken string, saleID int64) (*entity.Sale, error) {
	f.record("get-sale")
	return nil, entity.ErrSaleNotFound
}

type fixture struct {
	api         *fakeBackoffice
	drafts      *persistence.DraftMemoryRepository
	submissions *persistence.SubmissionMemoryRepository
	reference   *LoadReferenceDataUseCase
	draftUC     *DraftUseCase
	submitUC    *SubmitSaleUseCase
}

func newFixture() *fixture {
	api := newFakeBackoffice()
	api.products = []entity.Product{
		{ID: 10, Codigo: "P-10", Descripcion: "Café", PrecioUnitario: decimal.NewFromInt(30)},
	}
	drafts := persistence.NewDraftMemoryRepository()
	submissions := persistence.NewSubmissionMemoryRepository()
	reference := NewLoadReferenceDataUseCase(api, cache.NewReferenceCache(), time.Minute, time.Minute)
	return &fixture{
		api:         api,
		drafts:      drafts,
		submissions: submissions,
		reference:   reference,
		draftUC:     NewDraftUseCase(drafts, reference),
		submitUC:    NewSubmitSaleUseCase(api, drafts, submissions),
	}
}

var testActor = request.Actor{TenantID: 7, UserID: 3, RoleID: 3, AuthToken: "Bearer test", Verified: true}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func requestWithCustomer(id int64) request.UpdateDraftRequest {
	return request.UpdateDraftRequest{CustomerID: &id}
}

// readyDraft abre un borrador con cabecera completa y una línea {10, 2, 30}
func (f *fixture) readyDraft(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	draft, err := f.draftUC.Create(ctx, testActor)
	require.NoError(t, err)

	_, err = f.draftUC.UpdateHeader(ctx, testActor, draft.ID, request.UpdateDraftRequest{
		CustomerID:           int64Ptr(1),
		BranchID:             int64Ptr(1),
		SectorDocumentCode:   intPtr(1),
		EconomicActivityCode: intPtr(620100),
		PaymentMethodCode:    intPtr(1),
		CurrencyCode:         intPtr(1),
	})
	require.NoError(t, err)

	_, err = f.draftUC.AddItem(ctx, testActor, draft.ID)
	require.NoError(t, err)
	_, err = f.draftUC.SelectProduct(ctx, testActor, draft.ID, 0, 10)
	require.NoError(t, err)
	_, err = f.draftUC.UpdateItem(ctx, testActor, draft.ID, 0, request.UpdateLineItemRequest{Quantity: intPtr(2)})
	require.NoError(t, err)

	return draft.ID
}
