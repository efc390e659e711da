// Code scaffolded by goctl. Safe to edit.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"astock-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/stocks",
				Handler: StockListHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/stocks/:symbol",
				Handler: StockDetailHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/stocks/:symbol/kline",
				Handler: StockKlineHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
