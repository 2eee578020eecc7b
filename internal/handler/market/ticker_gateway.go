package market

import (
	"lexchange/internal/market"
	"lexchange/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// TickerGateway 周期性把模拟价格快照推给所有websocket客户端
type TickerGateway struct {
	prices   *market.PriceService
	upgrader websocket.Upgrader
}

func NewTickerGateway(prices *market.PriceService) *TickerGateway {
	return &TickerGateway{
		prices: prices,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS 每个连接一个推送循环。interval参数单位毫秒，默认1000，最小200
func (g *TickerGateway) ServeWS(c *gin.Context) {
	interval := cast.ToInt(c.Query("interval"))
	if interval <= 0 {
		interval = 1000
	}
	if interval < 200 {
		interval = 200
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("ticker ws upgrade失败: %v", err)
		return
	}
	defer conn.Close()

	// 客户端断开时读取会出错，用它来结束推送循环
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snapshot := g.prices.Snapshot()
			if len(snapshot) == 0 {
				continue
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
