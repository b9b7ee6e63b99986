package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qreport/backend/api/transport"
	"github.com/qreport/backend/pkg/httpcontext"
	"github.com/qreport/backend/usecase/editor"
)

// EditorHandler exposes the multi-tab report editor sessions over HTTP.
type EditorHandler struct {
	baseHandler
	coordinator *editor.Coordinator
}

func NewEditorHandler(coordinator *editor.Coordinator, adapter *httpcontext.Adapter, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		coordinator: coordinator,
	}
}

// @Summary Open an editor session for an intervention
// @Tags editor
// @Router /api/v1/editor/sessions [post]
func (h *EditorHandler) OpenSession(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	var req transport.EditorOpenRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.InterventionID == "" {
		h.respondInvalid(ctx, "missing intervention id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.coordinator.Open(stdCtx, req.InterventionID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, snapshot)
}

// @Summary Get editor session state
// @Tags editor
// @Router /api/v1/editor/sessions/{id} [get]
func (h *EditorHandler) GetState(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	snapshot, err := h.coordinator.State(sessionID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Switch the selected tab, auto-saving the current one
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/switch [post]
func (h *EditorHandler) SwitchTab(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var req transport.EditorSwitchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	target := editor.Tab(req.Target)
	if !target.IsValid() {
		h.respondInvalid(ctx, "unknown tab")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.coordinator.SwitchTab(stdCtx, sessionID, target)
	if err != nil {
		// The snapshot still carries the session state so the caller can
		// show which tab kept the focus and why.
		status, code := mapError(err)
		h.respondJSON(ctx, status, transport.NewError(code, err.Error(), snapshot))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Exit the editor session
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/exit [post]
func (h *EditorHandler) ExitSession(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var req transport.EditorExitRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.coordinator.Exit(stdCtx, sessionID, req.SaveCurrent); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Update the General tab draft
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/general [put]
func (h *EditorHandler) UpdateGeneral(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var data editor.GeneralData
	if err := json.Unmarshal(ctx.PostBody(), &data); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	snapshot, err := h.coordinator.UpdateGeneral(sessionID, data)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Update the Details tab draft
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/details [put]
func (h *EditorHandler) UpdateDetails(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var data editor.DetailsData
	if err := json.Unmarshal(ctx.PostBody(), &data); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	snapshot, err := h.coordinator.UpdateDetails(sessionID, data)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Update the WorkDays tab draft
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/work-days [put]
func (h *EditorHandler) UpdateWorkDays(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var data editor.WorkDaysData
	if err := json.Unmarshal(ctx.PostBody(), &data); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	snapshot, err := h.coordinator.UpdateWorkDays(sessionID, data)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Open or close the work day detail sub-view
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/work-days/detail-view [put]
func (h *EditorHandler) SetWorkDaysDetailView(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var req transport.EditorDetailViewRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	snapshot, err := h.coordinator.SetWorkDaysDetailView(sessionID, req.Open)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Update the Signatures tab draft
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/signatures [put]
func (h *EditorHandler) UpdateSignatures(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var data editor.SignaturesData
	if err := json.Unmarshal(ctx.PostBody(), &data); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	snapshot, err := h.coordinator.UpdateSignatures(sessionID, data)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Attach the technician signature image
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/signatures/technician [post]
func (h *EditorHandler) AttachTechnicianSignature(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}
	image, ok := h.parseSignatureImage(ctx)
	if !ok {
		return
	}

	snapshot, err := h.coordinator.AttachTechnicianSignature(sessionID, image)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Attach the customer signature image
// @Tags editor
// @Router /api/v1/editor/sessions/{id}/signatures/customer [post]
func (h *EditorHandler) AttachCustomerSignature(ctx *fasthttp.RequestCtx) {
	sessionID, ok := h.sessionID(ctx)
	if !ok {
		return
	}
	image, ok := h.parseSignatureImage(ctx)
	if !ok {
		return
	}

	snapshot, err := h.coordinator.AttachCustomerSignature(sessionID, image)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

func (h *EditorHandler) sessionID(ctx *fasthttp.RequestCtx) (string, bool) {
	if h.technicianID(ctx) == "" {
		return "", false
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing session id")
		return "", false
	}
	return id, true
}

func (h *EditorHandler) parseSignatureImage(ctx *fasthttp.RequestCtx) ([]byte, bool) {
	var req transport.SignatureUploadRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ImageBase64 == "" {
		h.respondInvalid(ctx, "missing signature image")
		return nil, false
	}
	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		h.respondInvalid(ctx, "signature image is not valid base64")
		return nil, false
	}
	return image, true
}
