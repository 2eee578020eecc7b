package account

import (
	"lexchange/internal/consts"
	"lexchange/internal/model"
	"lexchange/internal/service"
	"lexchange/pkg/errors"
	"lexchange/pkg/errors/ecode"
	"lexchange/pkg/response"
	"lexchange/pkg/validator"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service service.SessionService
}

func NewAccountHandler(service service.SessionService) *AccountHandler {
	return &AccountHandler{service: service}
}

// @Summary		一键登录
// @description	恢复上一次的会话；没有会话时自动创建演示账户
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.LoginRes}
// @Router			/api/v1/auth/login [post]
func (handler *AccountHandler) Login() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.Login(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		注册新账户
// @description	清空旧会话并以给定用户名开新账户，带注册奖励
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.LoginRes}
// @Router			/api/v1/auth/register [post]
func (handler *AccountHandler) Register() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RegisterReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := handler.service.Register(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		退出登录
// @Produce		json
// @Param			Authorization	header	string	true	"Bearer 会话令牌"
// @Router			/api/v1/account/logout [get]
func (handler *AccountHandler) Logout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := ctx.GetString(consts.JWTTokenCtx)
		if err := handler.service.Logout(ctx, tokenStr); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		获取当前账户
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 会话令牌"
// @Success		200				{object}	response.ApiResponse{data=model.AccountGetRes}
// @Router			/api/v1/account [get]
func (handler *AccountHandler) AccountGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.AccountGet(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		自选列表开关
// @description	已在列表里则移除，否则添加
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 会话令牌"
// @Success		200				{object}	response.ApiResponse{data=model.WatchlistToggleRes}
// @Router			/api/v1/account/watchlist [post]
func (handler *AccountHandler) WatchlistToggle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.WatchlistToggleReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := handler.service.WatchlistToggle(ctx, req.Symbol)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
