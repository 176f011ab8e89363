package port

import (
	"context"
	"time"

	"sell/src/sell/domain/entity"

	"github.com/google/uuid"
)

// DraftRepository guarda los borradores mientras dura la edición.
// Cada borrador tiene un contexto de vida que se cancela al descartarlo.
type DraftRepository interface {
	// Create registra un borrador nuevo
	Create(ctx context.Context, draft *entity.SaleDraft) error

	// FindByID retorna una copia del borrador
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleDraft, error)

	// Mutate aplica fn bajo el lock del borrador y retorna una copia del resultado.
	// Si fn falla el borrador queda como estaba.
	Mutate(ctx context.Context, id uuid.UUID, fn func(draft *entity.SaleDraft) error) (*entity.SaleDraft, error)

	// Lifetime contexto que vive lo mismo que el borrador
	Lifetime(id uuid.UUID) (context.Context, error)

	// Delete descarta el borrador y cancela su contexto de vida
	Delete(ctx context.Context, id uuid.UUID) error

	// PurgeIdle descarta borradores sin cambios desde before
	PurgeIdle(before time.Time) int
}
