package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"sell/src/sell/application/request"
	"sell/src/sell/application/response"
	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
	"sell/src/sell/infrastructure/cache"

	"golang.org/x/sync/errgroup"
)

const (
	DatasetBranches       = "sucursales"
	DatasetPointsOfSale   = "puntos-venta"
	DatasetDocuments      = "documentos-actividades"
	DatasetPaymentMethods = "metodos-pago"
	DatasetCurrencies     = "monedas"
	DatasetProducts       = "productos"
)

// LoadReferenceDataUseCase carga en paralelo los datasets de los selectores
// del formulario, cada uno a través del cache
type LoadReferenceDataUseCase struct {
	api          port.BackofficeAPI
	cache        *cache.ReferenceCache
	referenceTTL time.Duration
	productsTTL  time.Duration
}

// NewLoadReferenceDataUseCase crea una nueva instancia del caso de uso
func NewLoadReferenceDataUseCase(
	api port.BackofficeAPI,
	referenceCache *cache.ReferenceCache,
	referenceTTL, productsTTL time.Duration,
) *LoadReferenceDataUseCase {
	return &LoadReferenceDataUseCase{
		api:          api,
		cache:        referenceCache,
		referenceTTL: referenceTTL,
		productsTTL:  productsTTL,
	}
}

// Execute carga todos los datasets. Cada dataset falla por separado; solo si
// fallan todos se retorna error. documentCode filtra las actividades.
func (uc *LoadReferenceDataUseCase) Execute(ctx context.Context, actor request.Actor, documentCode int) (*response.ReferenceDataResponse, error) {
	var (
		mu       sync.Mutex
		errs     = map[string]string{}
		firstErr error
	)
	fail := func(dataset string, err error) {
		mu.Lock()
		defer mu.Unlock()
		errs[dataset] = err.Error()
		if firstErr == nil {
			firstErr = err
		}
		log.Printf("⚠️  Reference dataset %s failed for empresa %d: %v", dataset, actor.TenantID, err)
	}

	resp := &response.ReferenceDataResponse{
		Branches:        []entity.SelectOption{},
		PointsOfSale:    []entity.SelectOption{},
		SectorDocuments: []entity.SelectOption{},
		Activities:      []entity.SelectOption{},
		PaymentMethods:  []entity.SelectOption{},
		Currencies:      []entity.SelectOption{},
		Products:        []response.ProductOption{},
	}

	var g errgroup.Group

	g.Go(func() error {
		branches, err := uc.Branches(ctx, actor)
		if err != nil {
			fail(DatasetBranches, err)
			return nil
		}
		resp.Branches = toOptions(branches, entity.Branch.Option)
		return nil
	})

	g.Go(func() error {
		pos, err := uc.PointsOfSale(ctx, actor)
		if err != nil {
			fail(DatasetPointsOfSale, err)
			return nil
		}
		resp.PointsOfSale = toOptions(pos, entity.PointOfSale.Option)
		return nil
	})

	g.Go(func() error {
		catalog, err := uc.DocumentActivities(ctx, actor)
		if err != nil {
			fail(DatasetDocuments, err)
			return nil
		}
		resp.SectorDocuments = catalog.DocumentOptions()
		resp.Activities = catalog.ActivityOptions(documentCode)
		return nil
	})

	g.Go(func() error {
		methods, err := uc.PaymentMethods(ctx, actor)
		if err != nil {
			fail(DatasetPaymentMethods, err)
			return nil
		}
		resp.PaymentMethods = toOptions(methods, entity.PaymentMethod.Option)
		return nil
	})

	g.Go(func() error {
		currencies, err := uc.Currencies(ctx, actor)
		if err != nil {
			fail(DatasetCurrencies, err)
			return nil
		}
		resp.Currencies = toOptions(currencies, entity.Currency.Option)
		return nil
	})

	g.Go(func() error {
		products, err := uc.Products(ctx, actor)
		if err != nil {
			fail(DatasetProducts, err)
			return nil
		}
		resp.Products = response.NewProductOptions(products)
		return nil
	})

	_ = g.Wait()

	if len(errs) == 6 {
		return nil, firstErr
	}
	if len(errs) > 0 {
		resp.Errors = errs
	}
	return resp, nil
}

// cached lee a través del cache solo con sesión verificada; con un token sin
// verificar cada lectura va al back-office con el token del usuario.
func (uc *LoadReferenceDataUseCase) cached(actor request.Actor, key string, ttl time.Duration, load func() (interface{}, error)) (interface{}, error) {
	if !actor.Verified {
		return uc.cache.LoadThrough(key, load)
	}
	return uc.cache.GetOrLoad(key, ttl, load)
}

// Branches sucursales de la empresa; sin empresa no hay sucursales
func (uc *LoadReferenceDataUseCase) Branches(ctx context.Context, actor request.Actor) ([]entity.Branch, error) {
	if actor.TenantID == 0 {
		return []entity.Branch{}, nil
	}
	v, err := uc.cached(actor, cache.Key(DatasetBranches, actor.TenantID), uc.referenceTTL, func() (interface{}, error) {
		return uc.api.FetchBranches(ctx, actor.AuthToken, actor.TenantID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Branch), nil
}

func (uc *LoadReferenceDataUseCase) PointsOfSale(ctx context.Context, actor request.Actor) ([]entity.PointOfSale, error) {
	v, err := uc.cached(actor, cache.Key(DatasetPointsOfSale, actor.TenantID), uc.referenceTTL, func() (interface{}, error) {
		return uc.api.FetchPointsOfSale(ctx, actor.AuthToken)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.PointOfSale), nil
}

// DocumentActivities homologación documentos sector / actividades de la empresa
func (uc *LoadReferenceDataUseCase) DocumentActivities(ctx context.Context, actor request.Actor) (*entity.DocumentActivityCatalog, error) {
	if actor.TenantID == 0 {
		return &entity.DocumentActivityCatalog{}, nil
	}
	v, err := uc.cached(actor, cache.Key(DatasetDocuments, actor.TenantID), uc.referenceTTL, func() (interface{}, error) {
		return uc.api.FetchDocumentActivities(ctx, actor.AuthToken, actor.TenantID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.DocumentActivityCatalog), nil
}

func (uc *LoadReferenceDataUseCase) PaymentMethods(ctx context.Context, actor request.Actor) ([]entity.PaymentMethod, error) {
	v, err := uc.cached(actor, cache.Key(DatasetPaymentMethods, actor.TenantID), uc.referenceTTL, func() (interface{}, error) {
		return uc.api.FetchPaymentMethods(ctx, actor.AuthToken)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.PaymentMethod), nil
}

func (uc *LoadReferenceDataUseCase) Currencies(ctx context.Context, actor request.Actor) ([]entity.Currency, error) {
	v, err := uc.cached(actor, cache.Key(DatasetCurrencies, actor.TenantID), uc.referenceTTL, func() (interface{}, error) {
		return uc.api.FetchCurrencies(ctx, actor.AuthToken)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Currency), nil
}

// Products catálogo de productos de la empresa, con ventana de frescura propia
func (uc *LoadReferenceDataUseCase) Products(ctx context.Context, actor request.Actor) ([]entity.Product, error) {
	if actor.TenantID == 0 {
		return []entity.Product{}, nil
	}
	v, err := uc.cached(actor, cache.Key(DatasetProducts, actor.TenantID), uc.productsTTL, func() (interface{}, error) {
		return uc.api.FetchProducts(ctx, actor.AuthToken, actor.TenantID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Product), nil
}

// ProductCatalog catálogo indexado para resolver precios de líneas
func (uc *LoadReferenceDataUseCase) ProductCatalog(ctx context.Context, actor request.Actor) (entity.ProductCatalog, error) {
	products, err := uc.Products(ctx, actor)
	if err != nil {
		return entity.ProductCatalog{}, err
	}
	return entity.NewProductCatalog(products), nil
}

func toOptions[T any](items []T, option func(T) entity.SelectOption) []entity.SelectOption {
	options := make([]entity.SelectOption, 0, len(items))
	for _, item := range items {
		options = append(options, option(item))
	}
	return options
}
