package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qreport/backend/pkg/httpcontext"
	settingsUC "github.com/qreport/backend/usecase/settings"
)

type SettingsHandler struct {
	baseHandler
	uc *settingsUC.UseCase
}

func NewSettingsHandler(uc *settingsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get the card variant for a list screen
// @Tags settings
// @Router /api/v1/settings/card-variant/{list} [get]
func (h *SettingsHandler) GetCardVariant(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	list, _ := ctx.UserValue("list").(string)
	if list == "" {
		h.respondInvalid(ctx, "missing list key")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	variant := h.uc.GetCardVariant(stdCtx, list)
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"variant": string(variant)})
}

// @Summary Cycle the card variant for a list screen
// @Tags settings
// @Router /api/v1/settings/card-variant/{list}/cycle [post]
func (h *SettingsHandler) CycleCardVariant(ctx *fasthttp.RequestCtx) {
	if h.technicianID(ctx) == "" {
		return
	}

	list, _ := ctx.UserValue("list").(string)
	if list == "" {
		h.respondInvalid(ctx, "missing list key")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	variant := h.uc.CycleCardVariant(stdCtx, list)
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"variant": string(variant)})
}
