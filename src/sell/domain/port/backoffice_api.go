package port

import (
	"context"

	"sell/src/sell/domain/entity"
)

// BackofficeAPI contrato del back-office de facturación que consume el flujo de venta.
// authToken se reenvía tal cual llegó en la petición.
type BackofficeAPI interface {
	FetchBranches(ctx context.Context, authToken string, empresaID int64) ([]entity.Branch, error)
	FetchPointsOfSale(ctx context.Context, authToken string) ([]entity.PointOfSale, error)
	FetchDocumentActivities(ctx context.Context, authToken string, empresaID int64) (*entity.DocumentActivityCatalog, error)
	FetchPaymentMethods(ctx context.Context, authToken string) ([]entity.PaymentMethod, error)
	FetchCurrencies(ctx context.Context, authToken string) ([]entity.Currency, error)
	FetchProducts(ctx context.Context, authToken string, empresaID int64) ([]entity.Product, error)

	GetCustomer(ctx context.Context, authToken string, customerID int64) (*entity.Customer, error)
	SearchCustomers(ctx context.Context, authToken string, documentNumber string) ([]entity.Customer, error)

	CreateSale(ctx context.Context, authToken string, payload entity.CreateSalePayload) (*entity.CreatedSale, error)
	ListSales(ctx context.Context, authToken string) ([]entity.Sale, error)
	GetSale(ctx context.Context, authToken string, saleID int64) (*entity.Sale, error)
}
