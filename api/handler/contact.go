package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qreport/backend/api/transport"
	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/pkg/httpcontext"
	contactUC "github.com/qreport/backend/usecase/contact"
	"github.com/qreport/backend/usecase/listing"
)

type ContactHandler struct {
	baseHandler
	uc *contactUC.UseCase
}

func NewContactHandler(uc *contactUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List contacts for a client
// @Tags contacts
// @Router /api/v1/clients/{id}/contacts [get]
func (h *ContactHandler) GetContacts(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	clientID, _ := ctx.UserValue("id").(string)
	if clientID == "" {
		h.respondInvalid(ctx, "missing client id")
		return
	}

	query := listing.ContactQuery{
		Query:      string(ctx.QueryArgs().Peek("query")),
		ActiveOnly: ctx.QueryArgs().GetBool("active_only"),
		Sort:       listing.ContactSort(ctx.QueryArgs().Peek("sort")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	contacts, err := h.uc.List(stdCtx, clientID, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, contacts)
}

// @Summary Get contact
// @Tags contacts
// @Router /api/v1/contacts/{id} [get]
func (h *ContactHandler) GetContact(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing contact id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	contact, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, contact)
}

// @Summary Create contact
// @Tags contacts
// @Router /api/v1/clients/{id}/contacts [post]
func (h *ContactHandler) CreateContact(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	contact, ok := h.parseContact(ctx)
	if !ok {
		return
	}
	if contact.ClientID == "" {
		if clientID, ok := ctx.UserValue("id").(string); ok {
			contact.ClientID = clientID
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, contact)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update contact
// @Tags contacts
// @Router /api/v1/contacts/{id} [put]
func (h *ContactHandler) UpdateContact(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	contact, ok := h.parseContact(ctx)
	if !ok {
		return
	}
	if contact.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			contact.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, contact)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Deactivate contact
// @Tags contacts
// @Router /api/v1/contacts/{id} [delete]
func (h *ContactHandler) DeactivateContact(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing contact id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Deactivate(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Bulk delete contacts
// @Tags contacts
// @Router /api/v1/contacts/bulk-delete [post]
func (h *ContactHandler) BulkDeleteContacts(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	var req transport.BulkDeleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if len(req.IDs) == 0 {
		h.respondInvalid(ctx, "no contact ids provided")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result := h.uc.BulkDelete(stdCtx, req.IDs)
	status := http.StatusOK
	if result.AllFailed() {
		status = http.StatusUnprocessableEntity
	}
	h.respondSuccess(ctx, status, result)
}

func (h *ContactHandler) parseContact(ctx *fasthttp.RequestCtx) (*domain.Contact, bool) {
	var req transport.ContactRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Contact{
		ID:          req.ID,
		ClientID:    req.ClientID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		MobilePhone: req.MobilePhone,
		Role:        req.Role,
		IsPrimary:   req.IsPrimary,
	}, true
}
