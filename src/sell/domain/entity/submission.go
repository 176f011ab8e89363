package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionStatus resultado de un intento de alta de venta
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission registro local de cada envío de un borrador al back-office
type Submission struct {
	ID                uuid.UUID        `json:"id"`
	DraftID           uuid.UUID        `json:"draft_id"`
	TenantID          int64            `json:"empresa_id"`
	UserID            int64            `json:"usuario_id"`
	SaleID            int64            `json:"venta_id,omitempty"`
	PaymentMethodCode int              `json:"codigo_metodo_pago_sin"`
	ItemCount         int              `json:"items"`
	EstimatedTotal    decimal.Decimal  `json:"total_estimado"`
	Status            SubmissionStatus `json:"status"`
	ErrorMessage      string           `json:"error,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// NewSubmission crea el registro de un intento a partir del borrador
func NewSubmission(d *SaleDraft, totals Totals) *Submission {
	return &Submission{
		ID:                uuid.New(),
		DraftID:           d.ID,
		TenantID:          d.TenantID,
		UserID:            d.UserID,
		PaymentMethodCode: d.PaymentMethodCode,
		ItemCount:         totals.ItemCount,
		EstimatedTotal:    totals.EstimatedTotal,
		CreatedAt:         time.Now(),
	}
}

// Succeed marca el intento como exitoso
func (s *Submission) Succeed(saleID int64) {
	s.Status = SubmissionSucceeded
	s.SaleID = saleID
}

// Fail marca el intento como fallido
func (s *Submission) Fail(err error) {
	s.Status = SubmissionFailed
	s.ErrorMessage = err.Error()
}
