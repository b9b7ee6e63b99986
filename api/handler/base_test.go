package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/qreport/backend/domain"
)

func TestMapErrorClassification(t *testing.T) {
	status, code := mapError(domain.ErrUnauthorized)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, string(domain.ErrCodeUnauthorized), code)

	wrapped := domain.WrapError(domain.ErrCodeInternal, "read session", errors.New("connection refused"))
	status, code = mapError(wrapped)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, string(domain.ErrCodeInternal), code)
}

func TestTechnicianIDRequiresHeader(t *testing.T) {
	h := newBaseHandler(nil, nil)

	var ctx fasthttp.RequestCtx
	require.Empty(t, h.technicianID(&ctx))
	require.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())

	ctx.Request.Header.Set("X-Technician-ID", "t-1")
	require.Equal(t, "t-1", h.technicianID(&ctx))
}
