package market

import (
	"lexchange/internal/model"
	"math/rand"
	"sync"
	"time"
)

// 模拟行情。每个符号一条随机游走的价格，适合本地联调和演示，
// 不消费任何外部行情源

type PriceService struct {
	mu     sync.Mutex
	prices map[string]float64
	rnd    *rand.Rand
}

func NewPriceService() *PriceService {
	return &PriceService{
		prices: make(map[string]float64),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetInitialPrice 设置初始价格
func (s *PriceService) SetInitialPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// LastPrice 返回本地价格并做小幅浮动
func (s *PriceService) LastPrice(symbol string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.prices[symbol]
	if !ok {
		// 如果没有初始化，随机一个价格并记录
		price = 10000 + s.rnd.Float64()*2000 // e.g., $10000 ~ $12000
	}

	// 模拟价格波动 ±0.5%
	fluctuation := (s.rnd.Float64()*0.01 - 0.005) * price
	price += fluctuation
	s.prices[symbol] = price

	return price
}

// Snapshot 当前全部价格，广播用
func (s *PriceService) Snapshot() []model.Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	out := make([]model.Ticker, 0, len(s.prices))
	for symbol, price := range s.prices {
		out = append(out, model.Ticker{Symbol: symbol, Price: price, Ts: now})
	}
	return out
}
