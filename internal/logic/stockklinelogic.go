package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"astock-api/internal/svc"
	"astock-api/internal/types"
	"astock-api/pkg/kline"
)

type StockKlineLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStockKlineLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StockKlineLogic {
	return &StockKlineLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *StockKlineLogic) StockKline(req *types.KlineReq) ([]types.Candle, error) {
	freq, err := kline.ParseFreq(req.Freq)
	if err != nil {
		return nil, err
	}

	candles, err := l.svcCtx.Stocks.Kline(l.ctx, req.Symbol, freq, req.Limit)
	if err != nil {
		l.Errorf("stock kline: symbol=%s freq=%s limit=%d err=%v", req.Symbol, freq, req.Limit, err)
		return nil, err
	}

	resp := make([]types.Candle, 0, len(candles))
	for _, c := range candles {
		resp = append(resp, types.Candle{
			Date:      c.Date,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			VolumeStr: c.VolumeStr,
			AmountStr: c.AmountStr,
		})
	}
	return resp, nil
}
