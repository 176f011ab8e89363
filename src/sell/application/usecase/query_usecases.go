package usecase

import (
	"context"
	"strings"
	"time"

	"sell/src/sell/application/request"
	"sell/src/sell/application/response"
	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
	"sell/src/shared/domain/criteria"
)

// CustomerUseCase tarjeta y búsqueda de clientes de la sección de identificación
type CustomerUseCase struct {
	api port.BackofficeAPI
}

// NewCustomerUseCase crea una nueva instancia del caso de uso
func NewCustomerUseCase(api port.BackofficeAPI) *CustomerUseCase {
	return &CustomerUseCase{api: api}
}

// Get retorna la tarjeta del cliente
func (uc *CustomerUseCase) Get(ctx context.Context, actor request.Actor, id int64) (*response.CustomerResponse, error) {
	customer, err := uc.api.GetCustomer(ctx, actor.AuthToken, id)
	if err != nil {
		return nil, err
	}
	resp := response.NewCustomerResponse(*customer)
	return &resp, nil
}

// Search busca clientes por número de documento; una búsqueda vacía no llama
// al back-office
func (uc *CustomerUseCase) Search(ctx context.Context, actor request.Actor, documentNumber string) ([]response.CustomerResponse, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return []response.CustomerResponse{}, nil
	}

	customers, err := uc.api.SearchCustomers(ctx, actor.AuthToken, documentNumber)
	if err != nil {
		return nil, err
	}

	result := make([]response.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, response.NewCustomerResponse(c))
	}
	return result, nil
}

// SalesUseCase listado y detalle de ventas registradas en el back-office
type SalesUseCase struct {
	api port.BackofficeAPI
}

// NewSalesUseCase crea una nueva instancia del caso de uso
func NewSalesUseCase(api port.BackofficeAPI) *SalesUseCase {
	return &SalesUseCase{api: api}
}

// List retorna las ventas visibles para el token
func (uc *SalesUseCase) List(ctx context.Context, actor request.Actor) (*response.SaleListResponse, error) {
	sales, err := uc.api.ListSales(ctx, actor.AuthToken)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []entity.Sale{}
	}
	return &response.SaleListResponse{Items: sales, Total: len(sales)}, nil
}

// Get retorna el detalle de una venta
func (uc *SalesUseCase) Get(ctx context.Context, actor request.Actor, id int64) (*entity.Sale, error) {
	return uc.api.GetSale(ctx, actor.AuthToken, id)
}

// SubmissionLogUseCase consulta la bitácora local de envíos
type SubmissionLogUseCase struct {
	submissions port.SubmissionRepository
}

// NewSubmissionLogUseCase crea una nueva instancia del caso de uso
func NewSubmissionLogUseCase(submissions port.SubmissionRepository) *SubmissionLogUseCase {
	return &SubmissionLogUseCase{submissions: submissions}
}

// List pagina los envíos de la empresa
func (uc *SubmissionLogUseCase) List(ctx context.Context, actor request.Actor, c criteria.Criteria) (*response.SubmissionListResponse, error) {
	items, total, err := uc.submissions.ListByTenant(ctx, actor.TenantID, c)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.Submission{}
	}

	resp := &response.SubmissionListResponse{Items: items, Total: total}
	if c.Limit != nil {
		resp.Limit = *c.Limit
	}
	if c.Offset != nil {
		resp.Offset = *c.Offset
	}
	return resp, nil
}

// DailyReport resumen de envíos de la empresa en el día indicado
func (uc *SubmissionLogUseCase) DailyReport(ctx context.Context, actor request.Actor, day time.Time) (*response.DailyReportResponse, error) {
	summary, err := uc.submissions.DailySummary(ctx, actor.TenantID, day)
	if err != nil {
		return nil, err
	}
	return response.NewDailyReportResponse(summary), nil
}
