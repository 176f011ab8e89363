package usecase

import (
	"context"
	"errors"
	"log"

	"sell/src/sell/application/request"
	"sell/src/sell/application/response"
	"sell/src/sell/domain/entity"
	"sell/src/sell/domain/port"
	"sell/src/sell/infrastructure/metrics"

	"github.com/google/uuid"
)

// SubmitSaleUseCase envía el borrador al back-office como alta de venta.
// Flujo:
// 1. Un borrador ya enviado responde con la venta registrada, sin red
// 2. Validar y pasar a submitting (rechaza un segundo envío concurrente)
// 3. Normalizar y POST /ventas bajo un contexto que cancela la petición o el descarte del borrador
// 4. Éxito → submitted con el id de venta; fallo → vuelve a edición con los datos intactos
// 5. Registrar el intento en la bitácora
type SubmitSaleUseCase struct {
	api         port.BackofficeAPI
	drafts      port.DraftRepository
	submissions port.SubmissionRepository
}

// NewSubmitSaleUseCase crea una nueva instancia del caso de uso
func NewSubmitSaleUseCase(
	api port.BackofficeAPI,
	drafts port.DraftRepository,
	submissions port.SubmissionRepository,
) *SubmitSaleUseCase {
	return &SubmitSaleUseCase{
		api:         api,
		drafts:      drafts,
		submissions: submissions,
	}
}

// Execute envía el borrador id
func (uc *SubmitSaleUseCase) Execute(ctx context.Context, actor request.Actor, id uuid.UUID) (*response.SubmitSaleResponse, error) {
	draft, err := uc.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.TenantID != actor.TenantID {
		return nil, entity.ErrDraftNotFound
	}

	if replay, err := uc.replay(ctx, draft); replay != nil || err != nil {
		return replay, err
	}

	draft, err = uc.drafts.Mutate(ctx, id, func(d *entity.SaleDraft) error {
		return d.BeginSubmit()
	})
	if err != nil {
		if !errors.Is(err, entity.ErrDraftSubmitting) {
			metrics.Submission("rejected")
		}
		return nil, err
	}

	lifetime, err := uc.drafts.Lifetime(id)
	if err != nil {
		return nil, entity.ErrDraftDiscarded
	}
	submitCtx, cancel := joinContexts(ctx, lifetime)
	defer cancel()

	totals := entity.CalculateTotals(draft)
	payload := entity.NormalizeSale(draft)
	submission := entity.NewSubmission(draft, totals)

	log.Printf("🛒 Submitting sale draft %s - Empresa: %d, Items: %d, Total estimado: %s",
		id, actor.TenantID, totals.ItemCount, totals.EstimatedTotal.StringFixed(entity.MoneyPlaces))

	created, err := uc.api.CreateSale(submitCtx, actor.AuthToken, payload)

	if lifetime.Err() != nil {
		log.Printf("⚠️  Sale draft %s discarded while submitting, result ignored", id)
		metrics.Submission("discarded")
		return nil, entity.ErrDraftDiscarded
	}

	if err != nil {
		log.Printf("❌ Sale draft %s rejected: %v", id, err)
		uc.abort(id)
		submission.Fail(err)
		uc.record(submission)
		metrics.Submission("failed")
		return nil, err
	}

	_, err = uc.drafts.Mutate(context.Background(), id, func(d *entity.SaleDraft) error {
		d.CompleteSubmit(created.ID)
		return nil
	})
	if err != nil {
		log.Printf("⚠️  Sale %d created but draft %s is gone: %v", created.ID, id, err)
	}

	submission.Succeed(created.ID)
	uc.record(submission)
	metrics.Submission("succeeded")
	log.Printf("✅ Sale created: ID=%d, Draft=%s", created.ID, id)

	return &response.SubmitSaleResponse{
		DraftID: id,
		SaleID:  created.ID,
		Totals:  response.NewTotalsResponse(totals),
	}, nil
}

// replay resuelve un borrador ya enviado sin volver a llamar al back-office
func (uc *SubmitSaleUseCase) replay(ctx context.Context, draft *entity.SaleDraft) (*response.SubmitSaleResponse, error) {
	saleID := draft.SaleID
	if draft.Status != entity.DraftSubmitted {
		previous, err := uc.submissions.FindSucceededByDraft(ctx, draft.ID)
		if err != nil {
			log.Printf("⚠️  Could not check previous submissions of draft %s: %v", draft.ID, err)
			return nil, nil
		}
		if previous == nil {
			return nil, nil
		}
		saleID = previous.SaleID
		if _, err := uc.drafts.Mutate(ctx, draft.ID, func(d *entity.SaleDraft) error {
			d.CompleteSubmit(saleID)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	metrics.Submission("replayed")
	return &response.SubmitSaleResponse{
		DraftID:  draft.ID,
		SaleID:   saleID,
		Replayed: true,
		Totals:   response.NewTotalsResponse(entity.CalculateTotals(draft)),
	}, nil
}

func (uc *SubmitSaleUseCase) abort(id uuid.UUID) {
	_, err := uc.drafts.Mutate(context.Background(), id, func(d *entity.SaleDraft) error {
		d.AbortSubmit()
		return nil
	})
	if err != nil {
		log.Printf("⚠️  Could not return draft %s to editing: %v", id, err)
	}
}

func (uc *SubmitSaleUseCase) record(s *entity.Submission) {
	if err := uc.submissions.Save(context.Background(), s); err != nil {
		log.Printf("⚠️  Could not record submission %s: %v", s.ID, err)
	}
}

// joinContexts deriva de ctx un contexto que además se cancela con other
func joinContexts(ctx, other context.Context) (context.Context, context.CancelFunc) {
	joined, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(other, cancel)
	return joined, func() {
		stop()
		cancel()
	}
}
