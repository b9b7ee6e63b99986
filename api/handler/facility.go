package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qreport/backend/api/transport"
	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/pkg/httpcontext"
	facilityUC "github.com/qreport/backend/usecase/facility"
	islandUC "github.com/qreport/backend/usecase/island"
)

type FacilityHandler struct {
	baseHandler
	facilities *facilityUC.UseCase
	islands    *islandUC.UseCase
}

func NewFacilityHandler(facilities *facilityUC.UseCase, islands *islandUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FacilityHandler {
	return &FacilityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		facilities:  facilities,
		islands:     islands,
	}
}

// @Summary List facilities for a client
// @Tags facilities
// @Router /api/v1/clients/{id}/facilities [get]
func (h *FacilityHandler) GetFacilities(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	clientID, _ := ctx.UserValue("id").(string)
	if clientID == "" {
		h.respondInvalid(ctx, "missing client id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	facilities, err := h.facilities.ListByClient(stdCtx, clientID, ctx.QueryArgs().GetBool("active_only"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, facilities)
}

// @Summary Get facility
// @Tags facilities
// @Router /api/v1/facilities/{id} [get]
func (h *FacilityHandler) GetFacility(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing facility id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	facility, err := h.facilities.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, facility)
}

// @Summary Create facility
// @Tags facilities
// @Router /api/v1/clients/{id}/facilities [post]
func (h *FacilityHandler) CreateFacility(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	facility, ok := h.parseFacility(ctx)
	if !ok {
		return
	}
	if facility.ClientID == "" {
		if clientID, ok := ctx.UserValue("id").(string); ok {
			facility.ClientID = clientID
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.facilities.Create(stdCtx, facility)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update facility
// @Tags facilities
// @Router /api/v1/facilities/{id} [put]
func (h *FacilityHandler) UpdateFacility(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	facility, ok := h.parseFacility(ctx)
	if !ok {
		return
	}
	if facility.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			facility.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.facilities.Update(stdCtx, facility)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Deactivate facility
// @Tags facilities
// @Router /api/v1/facilities/{id} [delete]
func (h *FacilityHandler) DeactivateFacility(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing facility id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.facilities.Deactivate(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List islands installed at a facility
// @Tags islands
// @Router /api/v1/facilities/{id}/islands [get]
func (h *FacilityHandler) GetIslands(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	facilityID, _ := ctx.UserValue("id").(string)
	if facilityID == "" {
		h.respondInvalid(ctx, "missing facility id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	islands, err := h.islands.ListByFacility(stdCtx, facilityID, ctx.QueryArgs().GetBool("active_only"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, islands)
}

// @Summary Create island
// @Tags islands
// @Router /api/v1/facilities/{id}/islands [post]
func (h *FacilityHandler) CreateIsland(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	island, ok := h.parseIsland(ctx)
	if !ok {
		return
	}
	if island.FacilityID == "" {
		if facilityID, ok := ctx.UserValue("id").(string); ok {
			island.FacilityID = facilityID
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.islands.Create(stdCtx, island)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update island
// @Tags islands
// @Router /api/v1/islands/{id} [put]
func (h *FacilityHandler) UpdateIsland(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	island, ok := h.parseIsland(ctx)
	if !ok {
		return
	}
	if island.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			island.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.islands.Update(stdCtx, island)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Deactivate island
// @Tags islands
// @Router /api/v1/islands/{id} [delete]
func (h *FacilityHandler) DeactivateIsland(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing island id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.islands.Deactivate(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *FacilityHandler) parseFacility(ctx *fasthttp.RequestCtx) (*domain.Facility, bool) {
	var req transport.FacilityRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Facility{
		ID:          req.ID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Address:     req.Address,
		IsPrimary:   req.IsPrimary,
	}, true
}

func (h *FacilityHandler) parseIsland(ctx *fasthttp.RequestCtx) (*domain.Island, bool) {
	var req transport.IslandRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Island{
		ID:           req.ID,
		FacilityID:   req.FacilityID,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Model:        req.Model,
	}, true
}
