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
	clientUC "github.com/qreport/backend/usecase/client"
)

type ClientHandler struct {
	baseHandler
	uc *clientUC.UseCase
}

func NewClientHandler(uc *clientUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List clients
// @Tags clients
// @Router /api/v1/clients [get]
func (h *ClientHandler) GetClients(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	filter := repository.ClientFilter{
		Query:      string(ctx.QueryArgs().Peek("query")),
		ActiveOnly: ctx.QueryArgs().GetBool("active_only"),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	clients, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, clients)
}

// @Summary Get client
// @Tags clients
// @Router /api/v1/clients/{id} [get]
func (h *ClientHandler) GetClient(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing client id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	client, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, client)
}

// @Summary Create client
// @Tags clients
// @Router /api/v1/clients [post]
func (h *ClientHandler) CreateClient(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	client, ok := h.parseClient(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, client)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update client
// @Tags clients
// @Router /api/v1/clients/{id} [put]
func (h *ClientHandler) UpdateClient(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	client, ok := h.parseClient(ctx)
	if !ok {
		return
	}
	if client.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			client.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, client)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Deactivate client
// @Tags clients
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) DeactivateClient(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing client id")
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

func (h *ClientHandler) parseClient(ctx *fasthttp.RequestCtx) (*domain.Client, bool) {
	var req transport.ClientRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Client{
		ID:           req.ID,
		BusinessName: req.BusinessName,
		VATNumber:    req.VATNumber,
		Email:        req.Email,
		Phone:        req.Phone,
		Notes:        req.Notes,
	}, true
}
