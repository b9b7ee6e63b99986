package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qreport/backend/api/transport"
	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/pkg/httpcontext"
	"github.com/qreport/backend/repository"
	interventionUC "github.com/qreport/backend/usecase/intervention"
	"github.com/qreport/backend/usecase/listing"
)

type InterventionHandler struct {
	baseHandler
	uc *interventionUC.UseCase
}

func NewInterventionHandler(uc *interventionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *InterventionHandler {
	return &InterventionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List interventions
// @Tags interventions
// @Router /api/v1/interventions [get]
func (h *InterventionHandler) GetInterventions(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	filter := repository.InterventionFilter{
		Status:     domain.InterventionStatus(ctx.QueryArgs().Peek("status")),
		ClientID:   string(ctx.QueryArgs().Peek("client_id")),
		Technician: string(ctx.QueryArgs().Peek("technician")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	query := listing.InterventionQuery{
		Status: filter.Status,
		Query:  string(ctx.QueryArgs().Peek("query")),
		Oldest: ctx.QueryArgs().GetBool("oldest"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	interventions, err := h.uc.List(stdCtx, filter, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, interventions)
}

// @Summary Get intervention
// @Tags interventions
// @Router /api/v1/interventions/{id} [get]
func (h *InterventionHandler) GetIntervention(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing intervention id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	iv, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, iv)
}

// @Summary Create intervention
// @Tags interventions
// @Router /api/v1/interventions [post]
func (h *InterventionHandler) CreateIntervention(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	iv, ok := h.parseIntervention(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, iv)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update intervention
// @Tags interventions
// @Router /api/v1/interventions/{id} [put]
func (h *InterventionHandler) UpdateIntervention(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	iv, ok := h.parseIntervention(ctx)
	if !ok {
		return
	}
	if iv.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			iv.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, iv)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Change intervention status
// @Tags interventions
// @Router /api/v1/interventions/{id}/status [put]
func (h *InterventionHandler) ChangeStatus(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing intervention id")
		return
	}

	var req transport.StatusChangeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	target := domain.InterventionStatus(req.Status)
	if !target.IsValid() {
		h.respondInvalid(ctx, "unknown intervention status")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ChangeStatus(stdCtx, id, target); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Change status for a batch of interventions
// @Tags interventions
// @Router /api/v1/interventions/batch/status [post]
func (h *InterventionHandler) ChangeStatusBatch(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	var req transport.BatchStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if len(req.IDs) == 0 {
		h.respondInvalid(ctx, "no intervention ids provided")
		return
	}
	target := domain.InterventionStatus(req.Status)
	if !target.IsValid() {
		h.respondInvalid(ctx, "unknown intervention status")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result := h.uc.ChangeStatusBatch(stdCtx, req.IDs, target)
	status := http.StatusOK
	if result.AllFailed() {
		status = http.StatusUnprocessableEntity
	}
	h.respondSuccess(ctx, status, result)
}

// @Summary Delete intervention
// @Tags interventions
// @Router /api/v1/interventions/{id} [delete]
func (h *InterventionHandler) DeleteIntervention(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing intervention id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, ctx.QueryArgs().GetBool("force")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Delete a batch of interventions
// @Tags interventions
// @Router /api/v1/interventions/batch/delete [post]
func (h *InterventionHandler) DeleteBatch(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	var req transport.BatchDeleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if len(req.IDs) == 0 {
		h.respondInvalid(ctx, "no intervention ids provided")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result := h.uc.DeleteBatch(stdCtx, req.IDs, req.Force)
	status := http.StatusOK
	if result.AllFailed() {
		status = http.StatusUnprocessableEntity
	}
	h.respondSuccess(ctx, status, result)
}

func (h *InterventionHandler) parseIntervention(ctx *fasthttp.RequestCtx) (*domain.TechnicalIntervention, bool) {
	var req transport.InterventionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.TechnicalIntervention{
		ID:                      req.ID,
		CustomerData:            req.CustomerData,
		RobotData:               req.RobotData,
		WorkLocation:            req.WorkLocation,
		Technicians:             req.Technicians,
		InterventionDescription: req.InterventionDescription,
		Materials:               req.Materials,
		ExternalReport:          req.ExternalReport,
		WorkDays:                req.WorkDays,
		Status:                  domain.InterventionStatus(req.Status),
	}, true
}
