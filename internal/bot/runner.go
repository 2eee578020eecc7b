package bot

import (
	"context"
	"lexchange/conf"
	"lexchange/internal/consts"
	"lexchange/internal/market"
	"lexchange/internal/model"
	"lexchange/internal/service"
	"lexchange/pkg/errors"
	"lexchange/pkg/logger"
	"strings"
	"time"
)

// Runner 周期性采样模拟行情，按双均线信号对演示账户下单。
// 下单失败（余额不足、未登录等）只记日志，不重试
type Runner struct {
	cfg    conf.BotConfig
	prices *market.PriceService
	srv    service.SessionService
	signal SMACrossSignal

	// symbol -> 收盘价窗口
	history map[string][]float64
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRunner(cfg conf.BotConfig, prices *market.PriceService, srv service.SessionService) *Runner {
	return &Runner{
		cfg:    cfg,
		prices: prices,
		srv:    srv,
		signal: SMACrossSignal{
			FastPeriod: cfg.FastPeriod,
			SlowPeriod: cfg.SlowPeriod,
		},
		history: make(map[string][]float64),
		done:    make(chan struct{}),
	}
}

func (r *Runner) Start() {
	if !r.cfg.Enabled {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.loop(ctx)
	logger.Infof("交易机器人启动, symbols=%v interval=%ds", r.cfg.Symbols, r.cfg.Interval)
}

func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(time.Duration(r.cfg.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, symbol := range r.cfg.Symbols {
				r.tick(ctx, strings.ToLower(symbol))
			}
		}
	}
}

func (r *Runner) tick(ctx context.Context, symbol string) {
	price := r.prices.LastPrice(symbol)

	window := append(r.history[symbol], price)
	// 窗口只需要覆盖慢线周期，多留一点余量
	if max := r.cfg.SlowPeriod * 2; len(window) > max {
		window = window[len(window)-max:]
	}
	r.history[symbol] = window

	sig := r.signal.Calculate(window)
	if sig == SignalHold {
		return
	}

	req := r.buildOrder(symbol, price, sig)
	if _, err := r.srv.TradeExecute(ctx, req); err != nil {
		logger.Infof("机器人下单被拒 symbol=%s side=%s err=%v", symbol, sig, errors.Code(err))
		return
	}
	logger.Infof("机器人成交 symbol=%s side=%s price=%f", symbol, sig, price)
}

func (r *Runner) buildOrder(symbol string, price float64, sig Signal) model.TradeReq {
	qty := r.cfg.TradeUSDT / price
	if sig == SignalBuy {
		return model.TradeReq{
			Side:         string(consts.TradeSideBuy),
			InputSymbol:  "usdt",
			OutputSymbol: symbol,
			AmountIn:     r.cfg.TradeUSDT,
			AmountOut:    qty,
		}
	}
	return model.TradeReq{
		Side:         string(consts.TradeSideSell),
		InputSymbol:  symbol,
		OutputSymbol: "usdt",
		AmountIn:     qty,
		AmountOut:    r.cfg.TradeUSDT,
	}
}
