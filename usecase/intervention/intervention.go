// Package intervention enforces the report lifecycle: the status transition
// graph, delete eligibility, and independent per-item batch processing.
package intervention

import (
	"context"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
	"github.com/qreport/backend/usecase"
	"github.com/qreport/backend/usecase/listing"
)

type UseCase struct {
	interventions repository.InterventionRepository
	buffer        usecase.OperationBuffer
	logger        *zap.Logger

	// debugMode bypasses transition and delete-eligibility validation for
	// administrative overrides.
	debugMode bool
}

func New(interventions repository.InterventionRepository, buffer usecase.OperationBuffer, logger *zap.Logger, debugMode bool) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		interventions: interventions,
		buffer:        buffer,
		logger:        logger,
		debugMode:     debugMode,
	}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.TechnicalIntervention, error) {
	return uc.interventions.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.InterventionFilter, query listing.InterventionQuery) ([]domain.TechnicalIntervention, error) {
	interventions, err := uc.interventions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return listing.Interventions(interventions, query), nil
}

func (uc *UseCase) Create(ctx context.Context, iv *domain.TechnicalIntervention) (*domain.TechnicalIntervention, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if iv.Status == "" {
		iv.Status = domain.StatusDraft
	}

	created, err := uc.interventions.Create(ctx, iv)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, iv, err) {
			return iv, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, iv *domain.TechnicalIntervention) (*domain.TechnicalIntervention, error) {
	if iv == nil || iv.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	old, err := uc.interventions.GetByID(ctx, iv.ID)
	if err != nil {
		return nil, err
	}
	if iv.Status == "" {
		iv.Status = old.Status
	}
	if iv.Status != old.Status && !uc.debugMode && !old.Status.CanTransitionTo(iv.Status) {
		return nil, domain.NewInvalidStatusTransition(old.Status, iv.Status)
	}

	if err := uc.interventions.Update(ctx, iv); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, iv, err) {
			return iv, nil
		}
		return nil, err
	}
	return iv, nil
}

// ChangeStatus applies one edge of the lifecycle graph. A same-state request
// is a no-op success; an illegal edge fails unless debug mode is on.
func (uc *UseCase) ChangeStatus(ctx context.Context, id string, target domain.InterventionStatus) error {
	if !target.IsValid() {
		return domain.NewErrorf(domain.ErrCodeInvalid, "unknown intervention status %q", target)
	}
	iv, err := uc.interventions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if iv.Status == target {
		return nil
	}
	if !uc.debugMode && !iv.Status.CanTransitionTo(target) {
		return domain.NewInvalidStatusTransition(iv.Status, target)
	}
	return uc.interventions.UpdateStatus(ctx, id, target)
}

// ChangeStatusBatch processes every id independently; a single failure never
// aborts its siblings. The batch counts as an overall failure only when all
// items fail.
func (uc *UseCase) ChangeStatusBatch(ctx context.Context, ids []string, target domain.InterventionStatus) usecase.BatchResult {
	var result usecase.BatchResult
	for _, id := range ids {
		if err := uc.ChangeStatus(ctx, id, target); err != nil {
			uc.logger.Warn("batch status change item failed",
				zap.String("intervention_id", id),
				zap.String("target", string(target)),
				zap.Error(err))
			result.RecordFailure(id, err)
			continue
		}
		result.RecordSuccess()
	}
	return result
}

// Delete removes an intervention subject to the eligibility rules; force
// (or debug mode) overrides them.
func (uc *UseCase) Delete(ctx context.Context, id string, force bool) error {
	iv, err := uc.interventions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := iv.DeleteEligibility(force || uc.debugMode); err != nil {
		return err
	}
	return uc.interventions.Delete(ctx, id)
}

// DeleteBatch deletes each intervention independently and accumulates the
// per-item outcome.
func (uc *UseCase) DeleteBatch(ctx context.Context, ids []string, force bool) usecase.BatchResult {
	var result usecase.BatchResult
	for _, id := range ids {
		if err := uc.Delete(ctx, id, force); err != nil {
			uc.logger.Warn("batch delete item failed",
				zap.String("intervention_id", id), zap.Error(err))
			result.RecordFailure(id, err)
			continue
		}
		result.RecordSuccess()
	}
	return result
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, iv *domain.TechnicalIntervention, cause error) bool {
	if uc.buffer == nil || domain.IsClassified(cause) {
		return false
	}
	if err := uc.buffer.BufferIntervention(ctx, operation, iv); err != nil {
		uc.logger.Error("failed to buffer intervention operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("intervention operation buffered", zap.String("operation", operation), zap.Error(cause))
	return true
}
