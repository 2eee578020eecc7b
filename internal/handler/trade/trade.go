package trade

import (
	"lexchange/internal/model"
	"lexchange/internal/service"
	"lexchange/pkg/errors"
	"lexchange/pkg/errors/ecode"
	"lexchange/pkg/response"
	"lexchange/pkg/validator"

	"github.com/gin-gonic/gin"
)

type TradeHandler struct {
	service service.SessionService
}

func NewTradeHandler(service service.SessionService) *TradeHandler {
	return &TradeHandler{service: service}
}

// @Summary		执行一笔交易
// @description	两笔原子记账：买入扣USDT加持仓，卖出减持仓加USDT。任何校验失败都不会改动账户
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 会话令牌"
// @Success		200				{object}	response.ApiResponse{data=model.TradeRes}
// @Router			/api/v1/trade/execute [post]
func (handler *TradeHandler) Execute() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TradeReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := handler.service.TradeExecute(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
