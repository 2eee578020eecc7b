package main

import (
	"context"
	"fmt"
	"lexchange/conf"
	"lexchange/internal/bot"
	"lexchange/internal/dao/query"
	accounthandler "lexchange/internal/handler/account"
	markethandler "lexchange/internal/handler/market"
	tradehandler "lexchange/internal/handler/trade"
	"lexchange/internal/market"
	"lexchange/internal/notify"
	"lexchange/internal/router"
	"lexchange/internal/service"
	"lexchange/internal/session"
	"lexchange/pkg/cache"
	"lexchange/pkg/db"
	"lexchange/pkg/logger"
	"time"

	"go.uber.org/multierr"
)

// App 持有需要在退出时清理的组件
type App struct {
	Router    Router
	botRunner *bot.Runner
	gateway   *notify.Gateway
	useRedis  bool
}

// 常见币种的初始价格，没列出来的由价格服务自己随机初始化
var seedPrices = map[string]float64{
	"btc": 64000,
	"eth": 3200,
	"sol": 150,
}

func InitApp(cfg *conf.Config) (*App, error) {
	app := &App{}

	store, err := buildStore(cfg, app)
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(store, cfg.Demo)
	// 启动时先尝试恢复上一次的会话
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mgr.Restore(ctx); err != nil {
		logger.Warnf("恢复会话失败，按无会话处理: %v", err)
	}
	logger.Infof("会话状态: %s", mgr.State())

	app.gateway = notify.NewGateway()
	notifier := notify.MultiNotifier{notify.NewLogNotifier(), app.gateway}

	srv := service.NewSessionService(mgr, notifier, cfg.Trade)

	prices := market.NewPriceService()
	for symbol, price := range seedPrices {
		prices.SetInitialPrice(symbol, price)
	}
	for _, symbol := range cfg.Demo.Watchlist {
		prices.LastPrice(symbol)
	}
	for _, symbol := range cfg.Bot.Symbols {
		prices.LastPrice(symbol)
	}

	app.botRunner = bot.NewRunner(cfg.Bot, prices, srv)
	app.botRunner.Start()

	ah := accounthandler.NewAccountHandler(srv)
	th := tradehandler.NewTradeHandler(srv)
	tg := markethandler.NewTickerGateway(prices)

	app.Router = router.NewApiRouter(ah, th, tg, app.gateway)
	return app, nil
}

// buildStore 根据配置选择会话槽的存储后端
func buildStore(cfg *conf.Config, app *App) (session.Store, error) {
	switch cfg.Store.Backend {
	case "memory", "":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore(cfg.Store.FilePath, cfg.Store.SealKey)
	case "redis":
		cache.InitRedis(cfg.Redis)
		app.useRedis = true
		return session.NewRedisStore(cache.GetRedisClient()), nil
	case "mysql":
		gdb := db.Init(db.NewConfig(cfg.Db.Username, cfg.Db.Password, cfg.Db.Host, cfg.Db.Port, cfg.Db.DbName))
		return session.NewGormStore(query.NewSessionDao(gdb)), nil
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.Store.Backend)
	}
}

// Shutdown 按注册顺序的反向清理资源
func (a *App) Shutdown() {
	var errs error
	a.botRunner.Stop()
	a.gateway.Close()
	if a.useRedis {
		errs = multierr.Append(errs, cache.CloseRedis())
	}
	if errs != nil {
		logger.Errorf("清理资源出错: %v", errs)
	}
}
