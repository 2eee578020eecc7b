package bot

import (
	talib "github.com/markcheno/go-talib"
)

// 双均线交叉策略。快线上穿慢线买入，下穿卖出，其余时间观望
type SMACrossSignal struct {
	FastPeriod int
	SlowPeriod int
}

type Signal string

const (
	SignalBuy  Signal = "buy"
	SignalSell Signal = "sell"
	SignalHold Signal = "hold"
)

// Calculate 基于收盘价序列给出信号
func (s *SMACrossSignal) Calculate(closes []float64) Signal {
	// 需要能算出前后两组快慢线才能判断交叉
	if len(closes) < s.SlowPeriod+1 {
		return SignalHold
	}

	fastSMA := talib.Sma(closes, s.FastPeriod)
	slowSMA := talib.Sma(closes, s.SlowPeriod)

	fast := fastSMA[len(fastSMA)-1]
	slow := slowSMA[len(slowSMA)-1]
	prevFast := fastSMA[len(fastSMA)-2]
	prevSlow := slowSMA[len(slowSMA)-2]

	// 只在交叉发生的那一根触发，避免趋势持续时反复下单
	if prevFast <= prevSlow && fast > slow {
		return SignalBuy
	}
	if prevFast >= prevSlow && fast < slow {
		return SignalSell
	}
	return SignalHold
}
