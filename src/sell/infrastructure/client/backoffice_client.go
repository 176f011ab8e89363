package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/sell/infrastructure/metrics"
	"sell/src/shared/domain/criteria"
	infraCriteria "sell/src/shared/infrastructure/criteria"
)

// BackofficeClient cliente HTTP del back-office de facturación
type BackofficeClient struct {
	httpClient *http.Client
	baseURL    string
	query      *infraCriteria.QueryCriteriaConverter
}

// NewBackofficeClient crea una nueva instancia del cliente
func NewBackofficeClient(baseURL string, timeout time.Duration) *BackofficeClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackofficeClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		query:   infraCriteria.NewQueryCriteriaConverter(),
	}
}

// FetchBranches GET /sucursales?empresa_id[eq]={id}
func (c *BackofficeClient) FetchBranches(ctx context.Context, authToken string, empresaID int64) ([]entity.Branch, error) {
	q := criteria.NewCriteriaBuilder().Where("empresa_id", criteria.OpEqual, empresaID).Build()

	var branches []entity.Branch
	if err := c.getList(ctx, authToken, "/sucursales?"+c.query.ToQuery(q), "sucursales", &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// FetchPointsOfSale GET /puntos-venta
func (c *BackofficeClient) FetchPointsOfSale(ctx context.Context, authToken string) ([]entity.PointOfSale, error) {
	var pos []entity.PointOfSale
	if err := c.getList(ctx, authToken, "/puntos-venta", "puntos-venta", &pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// FetchDocumentActivities GET /homologacion/documentos-actividades/{empresaId}
func (c *BackofficeClient) FetchDocumentActivities(ctx context.Context, authToken string, empresaID int64) (*entity.DocumentActivityCatalog, error) {
	var catalog entity.DocumentActivityCatalog
	path := fmt.Sprintf("/homologacion/documentos-actividades/%d", empresaID)
	if err := c.getObject(ctx, authToken, path, "documentos-actividades", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// FetchPaymentMethods GET /sincronizacion/metodos-pago
func (c *BackofficeClient) FetchPaymentMethods(ctx context.Context, authToken string) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	if err := c.getList(ctx, authToken, "/sincronizacion/metodos-pago", "metodos-pago", &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// FetchCurrencies GET /sincronizacion/monedas
func (c *BackofficeClient) FetchCurrencies(ctx context.Context, authToken string) ([]entity.Currency, error) {
	var currencies []entity.Currency
	if err := c.getList(ctx, authToken, "/sincronizacion/monedas", "monedas", &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// FetchProducts GET /productos?empresa_id[eq]={id}&include=unidad_medida
func (c *BackofficeClient) FetchProducts(ctx context.Context, authToken string, empresaID int64) ([]entity.Product, error) {
	q := criteria.NewCriteriaBuilder().Where("empresa_id", criteria.OpEqual, empresaID).Build()
	values := c.query.ToValues(q)
	values.Set("include", "unidad_medida")

	var products []entity.Product
	if err := c.getList(ctx, authToken, "/productos?"+values.Encode(), "productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCustomer GET /clientes/{id}
func (c *BackofficeClient) GetCustomer(ctx context.Context, authToken string, customerID int64) (*entity.Customer, error) {
	var customer entity.Customer
	err := c.getObject(ctx, authToken, fmt.Sprintf("/clientes/%d", customerID), "clientes", &customer)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", entity.ErrCustomerNotFound, customerID)
		}
		return nil, err
	}
	if customer.ID == 0 {
		return nil, fmt.Errorf("%w: customer without id", ErrUnexpectedEnvelope)
	}
	return &customer, nil
}

// SearchCustomers GET /clientes?numero_documento_identidad[lk]={q}
func (c *BackofficeClient) SearchCustomers(ctx context.Context, authToken string, documentNumber string) ([]entity.Customer, error) {
	q := criteria.NewCriteriaBuilder().Where("numero_documento_identidad", criteria.OpLike, documentNumber).Build()

	var customers []entity.Customer
	if err := c.getList(ctx, authToken, "/clientes?"+c.query.ToQuery(q), "clientes", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateSale POST /ventas
func (c *BackofficeClient) CreateSale(ctx context.Context, authToken string, payload entity.CreateSalePayload) (*entity.CreatedSale, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/ventas", "ventas", authToken, jsonData)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapObject(body)
	if err != nil {
		return nil, err
	}
	var created entity.CreatedSale
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("error unmarshalling created sale: %w", err)
	}
	return &created, nil
}

// ListSales GET /ventas
func (c *BackofficeClient) ListSales(ctx context.Context, authToken string) ([]entity.Sale, error) {
	var sales []entity.Sale
	if err := c.getList(ctx, authToken, "/ventas", "ventas", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSale GET /ventas/{id}
func (c *BackofficeClient) GetSale(ctx context.Context, authToken string, saleID int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := c.getObject(ctx, authToken, fmt.Sprintf("/ventas/%d", saleID), "ventas", &sale)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", entity.ErrSaleNotFound, saleID)
		}
		return nil, err
	}
	return &sale, nil
}

func (c *BackofficeClient) getList(ctx context.Context, authToken, path, endpoint string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, endpoint, authToken, nil)
	if err != nil {
		return err
	}
	raw, err := unwrapList(body)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshalling %s response: %w", endpoint, err)
	}
	return nil
}

func (c *BackofficeClient) getObject(ctx context.Context, authToken, path, endpoint string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, endpoint, authToken, nil)
	if err != nil {
		return err
	}
	raw, err := unwrapObject(body)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshalling %s response: %w", endpoint, err)
	}
	return nil
}

// do ejecuta la petición y retorna el cuerpo de una respuesta 2xx
func (c *BackofficeClient) do(ctx context.Context, method, path, endpoint, authToken string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}
