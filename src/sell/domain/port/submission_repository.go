package port

import (
	"context"
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/shared/domain/criteria"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySummary totales de envíos de un día
type DailySummary struct {
	Date           string          `json:"date"`
	Succeeded      int             `json:"succeeded"`
	Failed         int             `json:"failed"`
	EstimatedTotal decimal.Decimal `json:"total_estimado"`
	First          *time.Time      `json:"first,omitempty"`
	Last           *time.Time      `json:"last,omitempty"`
}

// SubmissionRepository bitácora local de envíos de ventas
type SubmissionRepository interface {
	Save(ctx context.Context, submission *entity.Submission) error
	// FindSucceededByDraft retorna nil, nil si el borrador no tiene envío exitoso
	FindSucceededByDraft(ctx context.Context, draftID uuid.UUID) (*entity.Submission, error)
	ListByTenant(ctx context.Context, tenantID int64, c criteria.Criteria) ([]*entity.Submission, int, error)
	DailySummary(ctx context.Context, tenantID int64, day time.Time) (*DailySummary, error)
}
