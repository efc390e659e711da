package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"astock-api/internal/svc"
	"astock-api/internal/types"
	"astock-api/pkg/market"
)

type StockDetailLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStockDetailLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StockDetailLogic {
	return &StockDetailLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *StockDetailLogic) StockDetail(req *types.StockReq) (*types.Stock, error) {
	stock, err := l.svcCtx.Stocks.GetStock(l.ctx, req.Symbol)
	if err != nil {
		if err != market.ErrSymbolNotFound {
			l.Errorf("stock detail: symbol=%s err=%v", req.Symbol, err)
		}
		return nil, err
	}
	view := toStockView(stock)
	return &view, nil
}
