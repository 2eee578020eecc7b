package router

import (
	"lexchange/internal/handler/account"
	"lexchange/internal/handler/market"
	"lexchange/internal/handler/ping"
	"lexchange/internal/handler/trade"
	"lexchange/internal/middleware"
	"lexchange/internal/notify"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	accountHandler *account.AccountHandler
	tradeHandler   *trade.TradeHandler
	tickerGateway  *market.TickerGateway
	notifyGateway  *notify.Gateway
}

func NewApiRouter(ah *account.AccountHandler, th *trade.TradeHandler, tg *market.TickerGateway, ng *notify.Gateway) *ApiRouter {
	return &ApiRouter{accountHandler: ah, tradeHandler: th, tickerGateway: tg, notifyGateway: ng}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	auth := base.Group("/auth", middleware.AntiDuplicateMiddleware())
	{
		// 恢复或创建演示账户
		auth.POST("/login", api.accountHandler.Login())
		auth.POST("/register", api.accountHandler.Register())
	}

	a := base.Group("/account", middleware.AuthToken())
	{
		a.GET("", api.accountHandler.AccountGet())
		a.GET("/logout", api.accountHandler.Logout())
		a.POST("/watchlist", api.accountHandler.WatchlistToggle())
	}

	t := base.Group("/trade", middleware.AuthToken())
	{
		t.POST("/execute", api.tradeHandler.Execute())
	}

	ws := base.Group("/ticker")
	{
		ws.GET("/ws", api.tickerGateway.ServeWS) // 通过websocket连接获取价格
	}

	n := base.Group("/notify")
	{
		n.GET("/ws", api.notifyGateway.ServeWS)
	}
}
