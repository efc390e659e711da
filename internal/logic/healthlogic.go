package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"astock-api/internal/svc"
	"astock-api/internal/types"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (*types.HealthResp, error) {
	return &types.HealthResp{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
