package persistence

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
	"sell/src/shared/domain/criteria"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionMemoryRepository bitácora en memoria para correr sin base de datos
type SubmissionMemoryRepository struct {
	submissions []*entity.Submission
	mu          sync.RWMutex
}

// NewSubmissionMemoryRepository crea una bitácora vacía
func NewSubmissionMemoryRepository() *SubmissionMemoryRepository {
	return &SubmissionMemoryRepository{}
}

func (r *SubmissionMemoryRepository) Save(ctx context.Context, s *entity.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *s
	r.submissions = append(r.submissions, &c)
	return nil
}

func (r *SubmissionMemoryRepository) FindSucceededByDraft(ctx context.Context, draftID uuid.UUID) (*entity.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.submissions) - 1; i >= 0; i-- {
		s := r.submissions[i]
		if s.DraftID == draftID && s.Status == entity.SubmissionSucceeded {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

// ListByTenant soporta los operadores =, !=, LIKE e IN sobre los campos de la
// bitácora y orden por created_at o total_estimado
func (r *SubmissionMemoryRepository) ListByTenant(ctx context.Context, tenantID int64, c criteria.Criteria) ([]*entity.Submission, int, error) {
	r.mu.RLock()
	var matched []*entity.Submission
	for _, s := range r.submissions {
		if s.TenantID != tenantID || !matchesFilters(s, c.Filters) {
			continue
		}
		copied := *s
		matched = append(matched, &copied)
	}
	r.mu.RUnlock()

	sortSubmissions(matched, c.Order)

	total := len(matched)
	if c.Limit != nil && c.Offset != nil {
		start := *c.Offset
		if start > total {
			start = total
		}
		end := start + *c.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *SubmissionMemoryRepository) DailySummary(ctx context.Context, tenantID int64, day time.Time) (*port.DailySummary, error) {
	from, to := dayBounds(day)
	summary := &port.DailySummary{Date: from.Format(time.DateOnly), EstimatedTotal: decimal.Zero}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.submissions {
		if s.TenantID != tenantID || s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		at := s.CreatedAt
		if summary.First == nil || at.Before(*summary.First) {
			summary.First = &at
		}
		if summary.Last == nil || at.After(*summary.Last) {
			summary.Last = &at
		}
		switch s.Status {
		case entity.SubmissionSucceeded:
			summary.Succeeded++
			summary.EstimatedTotal = summary.EstimatedTotal.Add(s.EstimatedTotal)
		case entity.SubmissionFailed:
			summary.Failed++
		}
	}
	return summary, nil
}

func submissionField(s *entity.Submission, field string) (string, bool) {
	switch field {
	case "status":
		return string(s.Status), true
	case "usuario_id":
		return strconv.FormatInt(s.UserID, 10), true
	case "venta_id":
		return strconv.FormatInt(s.SaleID, 10), true
	case "codigo_metodo_pago_sin":
		return strconv.Itoa(s.PaymentMethodCode), true
	case "draft_id":
		return s.DraftID.String(), true
	}
	return "", false
}

func matchesFilters(s *entity.Submission, filters criteria.Filters) bool {
	for _, f := range filters.Items {
		value, ok := submissionField(s, f.Field)
		if !ok {
			continue
		}
		want := fmt.Sprint(f.Value)
		switch f.Operator {
		case criteria.OpEqual:
			if value != want {
				return false
			}
		case criteria.OpNotEqual:
			if value == want {
				return false
			}
		case criteria.OpLike:
			if !strings.Contains(strings.ToLower(value), strings.ToLower(strings.Trim(want, "%"))) {
				return false
			}
		case criteria.OpIn:
			found := false
			for _, candidate := range strings.Split(want, ",") {
				if strings.TrimSpace(candidate) == value {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func sortSubmissions(items []*entity.Submission, order criteria.Order) {
	desc := order.IsEmpty() || order.OrderType == criteria.DESC
	less := func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) }
	if order.Field == "total_estimado" {
		less = func(i, j int) bool { return items[i].EstimatedTotal.LessThan(items[j].EstimatedTotal) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
