package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"astock-api/internal/config"
	"astock-api/internal/model"
	stockspersist "astock-api/internal/persistence/stocks"
	"astock-api/internal/service"
	"astock-api/pkg/market"
	"astock-api/pkg/market/providers/eastmoney"
	_ "astock-api/pkg/market/providers/tushare"
)

type ServiceContext struct {
	Config config.Config

	MarketConfig    *market.Config
	MarketProviders map[string]market.Provider
	DefaultMarket   market.Provider

	Stocks *service.StockService

	// Optional persistence, wired only when a Postgres DSN is configured.
	DBConn      sqlx.SqlConn
	StocksModel model.StocksModel
	Persist     *stockspersist.Service
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	if c.Market.Value != nil {
		marketCfg := c.Market.Value
		providers, err := marketCfg.BuildProviders()
		if err != nil {
			log.Fatalf("failed to build market providers: %v", err)
		}
		svc.MarketConfig = marketCfg
		svc.MarketProviders = providers
		if marketCfg.Default != "" {
			svc.DefaultMarket = providers[marketCfg.Default]
		}
	}
	if svc.DefaultMarket == nil {
		// No market section configured: fall back to the public EastMoney
		// feeds, which need no credentials.
		svc.DefaultMarket = eastmoney.NewProvider()
	}

	svc.Stocks = service.NewStockService(svc.DefaultMarket, c.EmptyKlinePolicy())

	if dsn := c.Postgres.ResolveDSN(); dsn != "" {
		conn := sqlx.NewSqlConn("pgx", dsn)
		svc.DBConn = conn
		svc.StocksModel = model.NewStocksModel(conn)
		svc.Persist = stockspersist.NewService(svc.StocksModel)
	}
	return svc
}
