package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"astock-api/internal/logic"
	"astock-api/internal/svc"
	"astock-api/internal/types"
)

func StockListHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.StockListReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		l := logic.NewStockListLogic(r.Context(), svcCtx)
		resp, err := l.StockList(&req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
