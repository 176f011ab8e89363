package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
	"sell/src/shared/domain/criteria"
	infraCriteria "sell/src/shared/infrastructure/criteria"

	"github.com/google/uuid"
)

const submissionColumns = `id, draft_id, empresa_id, usuario_id, venta_id,
			codigo_metodo_pago_sin, items, total_estimado,
			status, error_message, created_at`

// SubmissionPostgresRepository implementa SubmissionRepository usando PostgreSQL.
// Solo insert y select: la bitácora no se modifica.
type SubmissionPostgresRepository struct {
	db        *sql.DB
	converter *infraCriteria.SQLCriteriaConverter
}

// NewSubmissionPostgresRepository crea una nueva instancia del repositorio
func NewSubmissionPostgresRepository(db *sql.DB) *SubmissionPostgresRepository {
	return &SubmissionPostgresRepository{
		db:        db,
		converter: infraCriteria.NewSQLCriteriaConverter(),
	}
}

// Save registra un intento de envío
func (r *SubmissionPostgresRepository) Save(ctx context.Context, s *entity.Submission) error {
	query := `
		INSERT INTO sell_submissions (
			` + submissionColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	saleID := sql.NullInt64{Int64: s.SaleID, Valid: s.SaleID != 0}

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.DraftID,
		s.TenantID,
		s.UserID,
		saleID,
		s.PaymentMethodCode,
		s.ItemCount,
		s.EstimatedTotal,
		string(s.Status),
		s.ErrorMessage,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating sell_submission: %w", err)
	}
	return nil
}

// FindSucceededByDraft retorna el envío exitoso del borrador, o nil si no hay
func (r *SubmissionPostgresRepository) FindSucceededByDraft(ctx context.Context, draftID uuid.UUID) (*entity.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM sell_submissions
		WHERE draft_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, draftID, string(entity.SubmissionSucceeded)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying sell_submission: %w", err)
	}
	return s, nil
}

// ListByTenant lista los envíos de la empresa aplicando el criteria; retorna
// también el total sin paginar
func (r *SubmissionPostgresRepository) ListByTenant(ctx context.Context, tenantID int64, c criteria.Criteria) ([]*entity.Submission, int, error) {
	scoped := criteria.NewFilters(criteria.NewFilter("empresa_id", criteria.OpEqual, tenantID))
	for _, f := range c.Filters.Items {
		scoped.Add(f)
	}
	c.Filters = scoped

	countQuery, countParams := r.converter.ToCountSQL("SELECT COUNT(*) FROM sell_submissions", c)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countParams...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sell_submissions: %w", err)
	}

	query, params := r.converter.ToSelectSQL("SELECT "+submissionColumns+" FROM sell_submissions", c)
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying sell_submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*entity.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning sell_submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating sell_submissions: %w", err)
	}

	return submissions, total, nil
}

// DailySummary agrega los envíos de la empresa en el día (UTC) de day
func (r *SubmissionPostgresRepository) DailySummary(ctx context.Context, tenantID int64, day time.Time) (*port.DailySummary, error) {
	from, to := dayBounds(day)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'succeeded'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COALESCE(SUM(total_estimado) FILTER (WHERE status = 'succeeded'), 0),
			MIN(created_at),
			MAX(created_at)
		FROM sell_submissions
		WHERE empresa_id = $1 AND created_at >= $2 AND created_at < $3
	`

	summary := &port.DailySummary{Date: from.Format(time.DateOnly)}
	var first, last sql.NullTime
	err := r.db.QueryRowContext(ctx, query, tenantID, from, to).Scan(
		&summary.Succeeded,
		&summary.Failed,
		&summary.EstimatedTotal,
		&first,
		&last,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying daily summary: %w", err)
	}
	if first.Valid {
		summary.First = &first.Time
	}
	if last.Valid {
		summary.Last = &last.Time
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*entity.Submission, error) {
	s := &entity.Submission{}
	var saleID sql.NullInt64
	var status string
	err := row.Scan(
		&s.ID,
		&s.DraftID,
		&s.TenantID,
		&s.UserID,
		&saleID,
		&s.PaymentMethodCode,
		&s.ItemCount,
		&s.EstimatedTotal,
		&status,
		&s.ErrorMessage,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.SaleID = saleID.Int64
	s.Status = entity.SubmissionStatus(status)
	return s, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}
