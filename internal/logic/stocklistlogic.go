package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"astock-api/internal/svc"
	"astock-api/internal/types"
	"astock-api/pkg/market"
)

type StockListLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStockListLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StockListLogic {
	return &StockListLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *StockListLogic) StockList(req *types.StockListReq) ([]types.Stock, error) {
	stocks, err := l.svcCtx.Stocks.ListStocks(l.ctx, req.Limit, req.Offset)
	if err != nil {
		l.Errorf("stock list: limit=%d offset=%d err=%v", req.Limit, req.Offset, err)
		return nil, err
	}

	resp := make([]types.Stock, 0, len(stocks))
	for i := range stocks {
		resp = append(resp, toStockView(&stocks[i]))
	}
	return resp, nil
}

func toStockView(stock *market.Stock) types.Stock {
	return types.Stock{
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		Exchange:      stock.Exchange,
		CurrentPrice:  stock.CurrentPrice,
		ChangePercent: stock.ChangePercent,
		Volume:        stock.Volume,
		MarketCap:     stock.MarketCap,
		UpdatedAt:     stock.UpdatedAt.Format(time.RFC3339),
	}
}
