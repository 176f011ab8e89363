package response

import (
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
)

// SubmissionListResponse página de la bitácora de envíos
type SubmissionListResponse struct {
	Items  []*entity.Submission `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// DailyReportResponse resumen del día para la empresa
type DailyReportResponse struct {
	Date           string     `json:"date"`
	Submissions    int        `json:"submissions"`
	Succeeded      int        `json:"succeeded"`
	Failed         int        `json:"failed"`
	EstimatedTotal string     `json:"total_estimado"`
	First          *time.Time `json:"first_submission,omitempty"`
	Last           *time.Time `json:"last_submission,omitempty"`
}

// NewDailyReportResponse formatea el resumen diario
func NewDailyReportResponse(s *port.DailySummary) *DailyReportResponse {
	return &DailyReportResponse{
		Date:           s.Date,
		Submissions:    s.Succeeded + s.Failed,
		Succeeded:      s.Succeeded,
		Failed:         s.Failed,
		EstimatedTotal: s.EstimatedTotal.StringFixed(entity.MoneyPlaces),
		First:          s.First,
		Last:           s.Last,
	}
}

// SaleListResponse listado de ventas registradas
type SaleListResponse struct {
	Items []entity.Sale `json:"items"`
	Total int           `json:"total"`
}
