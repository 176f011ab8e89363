package usecase

import (
	"context"
	"fmt"
	"log"

	"sell/src/sell/application/request"
	"sell/src/sell/application/response"
	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"

	"github.com/google/uuid"
)

// DraftUseCase operaciones de edición del borrador de venta: cabecera,
// detalle y descarte
type DraftUseCase struct {
	drafts    port.DraftRepository
	reference *LoadReferenceDataUseCase
}

// NewDraftUseCase crea una nueva instancia del caso de uso
func NewDraftUseCase(drafts port.DraftRepository, reference *LoadReferenceDataUseCase) *DraftUseCase {
	return &DraftUseCase{
		drafts:    drafts,
		reference: reference,
	}
}

// Create abre un borrador vacío para el usuario
func (uc *DraftUseCase) Create(ctx context.Context, actor request.Actor) (*response.DraftResponse, error) {
	draft, err := entity.NewSaleDraft(actor.TenantID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.drafts.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("error creating draft: %w", err)
	}
	log.Printf("📝 Sale draft %s opened - Empresa: %d, Usuario: %d", draft.ID, actor.TenantID, actor.UserID)
	return response.NewDraftResponse(draft), nil
}

// Get retorna el borrador con sus totales
func (uc *DraftUseCase) Get(ctx context.Context, actor request.Actor, id uuid.UUID) (*response.DraftResponse, error) {
	draft, err := uc.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return response.NewDraftResponse(draft), nil
}

// UpdateHeader aplica cambios de cabecera
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, actor request.Actor, id uuid.UUID, req request.UpdateDraftRequest) (*response.DraftResponse, error) {
	return uc.edit(ctx, actor, id, func(d *entity.SaleDraft) error {
		return d.ApplyHeader(req.ToPatch())
	})
}

// AddItem agrega una línea vacía al detalle
func (uc *DraftUseCase) AddItem(ctx context.Context, actor request.Actor, id uuid.UUID) (*response.DraftResponse, error) {
	return uc.edit(ctx, actor, id, func(d *entity.SaleDraft) error {
		d.AddItem()
		return nil
	})
}

// UpdateItem fusiona los cambios sobre la línea index
func (uc *DraftUseCase) UpdateItem(ctx context.Context, actor request.Actor, id uuid.UUID, index int, req request.UpdateLineItemRequest) (*response.DraftResponse, error) {
	return uc.edit(ctx, actor, id, func(d *entity.SaleDraft) error {
		if !d.HasItem(index) {
			return fmt.Errorf("%w: %d", entity.ErrLineItemNotFound, index)
		}
		return d.UpdateItem(index, req.ToPatch())
	})
}

// RemoveItem elimina la línea index
func (uc *DraftUseCase) RemoveItem(ctx context.Context, actor request.Actor, id uuid.UUID, index int) (*response.DraftResponse, error) {
	return uc.edit(ctx, actor, id, func(d *entity.SaleDraft) error {
		if !d.HasItem(index) {
			return fmt.Errorf("%w: %d", entity.ErrLineItemNotFound, index)
		}
		d.RemoveItem(index)
		return nil
	})
}

// SelectProduct asigna el producto a la línea con el precio del catálogo de
// la empresa. El catálogo se resuelve antes de tomar el lock del borrador.
func (uc *DraftUseCase) SelectProduct(ctx context.Context, actor request.Actor, id uuid.UUID, index int, productID int64) (*response.DraftResponse, error) {
	if _, err := uc.find(ctx, actor, id); err != nil {
		return nil, err
	}

	catalog, err := uc.reference.ProductCatalog(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("error loading product catalog: %w", err)
	}

	return uc.edit(ctx, actor, id, func(d *entity.SaleDraft) error {
		if !d.HasItem(index) {
			return fmt.Errorf("%w: %d", entity.ErrLineItemNotFound, index)
		}
		return d.SelectProduct(index, productID, catalog)
	})
}

// Discard descarta el borrador. Con cambios sin enviar se rechaza salvo force;
// descartar cancela un envío en curso.
func (uc *DraftUseCase) Discard(ctx context.Context, actor request.Actor, id uuid.UUID, force bool) error {
	draft, err := uc.find(ctx, actor, id)
	if err != nil {
		return err
	}
	if draft.Dirty && !force {
		return entity.ErrDraftDirty
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️  Sale draft %s discarded (status=%s, dirty=%t)", id, draft.Status, draft.Dirty)
	return nil
}

func (uc *DraftUseCase) find(ctx context.Context, actor request.Actor, id uuid.UUID) (*entity.SaleDraft, error) {
	draft, err := uc.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.TenantID != actor.TenantID {
		return nil, entity.ErrDraftNotFound
	}
	return draft, nil
}

func (uc *DraftUseCase) edit(ctx context.Context, actor request.Actor, id uuid.UUID, fn func(d *entity.SaleDraft) error) (*response.DraftResponse, error) {
	draft, err := uc.drafts.Mutate(ctx, id, func(d *entity.SaleDraft) error {
		if d.TenantID != actor.TenantID {
			return entity.ErrDraftNotFound
		}
		if err := d.EnsureEditable(); err != nil {
			return err
		}
		return fn(d)
	})
	if err != nil {
		return nil, err
	}
	return response.NewDraftResponse(draft), nil
}
