package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"astock-api/internal/service"
	"astock-api/pkg/market"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP statuses: unknown symbols become
// 404, upstream outages 503, anything else (including parameter parsing)
// stays a 400.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, market.ErrSymbolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	}
	httpx.WriteJsonCtx(ctx, w, status, errorBody{Error: err.Error()})
}
