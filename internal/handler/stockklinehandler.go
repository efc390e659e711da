package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"astock-api/internal/logic"
	"astock-api/internal/svc"
	"astock-api/internal/types"
)

func StockKlineHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.KlineReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		l := logic.NewStockKlineLogic(r.Context(), svcCtx)
		resp, err := l.StockKline(&req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
