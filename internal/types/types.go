// Code scaffolded by goctl. Safe to edit.
package types

type StockListReq struct {
	Limit  int `form:"limit,default=100,range=[1:1000]"`
	Offset int `form:"offset,default=0,range=[0:)"`
}

type StockReq struct {
	Symbol string `path:"symbol"`
}

type KlineReq struct {
	Symbol string `path:"symbol"`
	Freq   string `form:"freq,default=daily,options=daily|weekly|monthly"`
	Limit  int    `form:"limit,default=30,range=[1:1000]"`
}

type Stock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Exchange      string  `json:"exchange"`
	CurrentPrice  float64 `json:"current_price,omitempty"`
	ChangePercent float64 `json:"change_percent,omitempty"`
	Volume        int64   `json:"volume,omitempty"`
	MarketCap     float64 `json:"market_cap,omitempty"`
	UpdatedAt     string  `json:"updated_at"`
}

type Candle struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	VolumeStr string  `json:"volume_str"`
	AmountStr string  `json:"amount_str"`
}

type HealthResp struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
