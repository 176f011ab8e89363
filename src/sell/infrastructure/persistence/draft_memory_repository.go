package persistence

import (
	"context"
	"log"
	"sync"
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/sell/infrastructure/metrics"

	"github.com/google/uuid"
)

type draftSlot struct {
	draft  *entity.SaleDraft
	ctx    context.Context
	cancel context.CancelFunc
}

// DraftMemoryRepository guarda los borradores en memoria. Los borradores no
// sobreviven a un reinicio del servicio.
type DraftMemoryRepository struct {
	drafts map[uuid.UUID]*draftSlot
	mu     sync.RWMutex
}

// NewDraftMemoryRepository crea un store vacío
func NewDraftMemoryRepository() *DraftMemoryRepository {
	return &DraftMemoryRepository{
		drafts: make(map[uuid.UUID]*draftSlot),
	}
}

func (r *DraftMemoryRepository) Create(ctx context.Context, draft *entity.SaleDraft) error {
	lifetime, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	r.drafts[draft.ID] = &draftSlot{draft: draft.Clone(), ctx: lifetime, cancel: cancel}
	count := len(r.drafts)
	r.mu.Unlock()

	metrics.SetActiveDrafts(count)
	return nil
}

func (r *DraftMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.drafts[id]
	if !ok {
		return nil, entity.ErrDraftNotFound
	}
	return slot.draft.Clone(), nil
}

// Mutate trabaja sobre una copia y solo la publica si fn no falla
func (r *DraftMemoryRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(draft *entity.SaleDraft) error) (*entity.SaleDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.drafts[id]
	if !ok {
		return nil, entity.ErrDraftNotFound
	}

	working := slot.draft.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	slot.draft = working
	return working.Clone(), nil
}

func (r *DraftMemoryRepository) Lifetime(id uuid.UUID) (context.Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.drafts[id]
	if !ok {
		return nil, entity.ErrDraftNotFound
	}
	return slot.ctx, nil
}

func (r *DraftMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	slot, ok := r.drafts[id]
	if ok {
		delete(r.drafts, id)
	}
	count := len(r.drafts)
	r.mu.Unlock()

	if !ok {
		return entity.ErrDraftNotFound
	}
	slot.cancel()
	metrics.SetActiveDrafts(count)
	return nil
}

// PurgeIdle descarta los borradores sin cambios desde before que no estén
// enviándose
func (r *DraftMemoryRepository) PurgeIdle(before time.Time) int {
	r.mu.Lock()
	var purged []*draftSlot
	for id, slot := range r.drafts {
		if slot.draft.Status == entity.DraftSubmitting || !slot.draft.UpdatedAt.Before(before) {
			continue
		}
		delete(r.drafts, id)
		purged = append(purged, slot)
	}
	count := len(r.drafts)
	r.mu.Unlock()

	for _, slot := range purged {
		slot.cancel()
	}
	if len(purged) > 0 {
		log.Printf("🔄 Purged %d idle sale drafts", len(purged))
	}
	metrics.SetActiveDrafts(count)
	return len(purged)
}
