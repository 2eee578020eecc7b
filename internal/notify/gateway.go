package notify

import (
	"lexchange/internal/consts"
	"lexchange/internal/model"
	"lexchange/pkg/logger"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// 通知的websocket网关：把Notify的消息广播给所有已连接的客户端。
// 客户端收到后自己负责展示成toast，DismissMs只是给前端的消失时间提示

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

type Gateway struct {
	mu       sync.Mutex
	clients  map[*wsClient]struct{}
	upgrader websocket.Upgrader
}

func NewGateway() *Gateway {
	return &Gateway{
		clients: make(map[*wsClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS 处理连接建立和断开
func (g *Gateway) ServeWS(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("notify ws upgrade error: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 64),
	}
	g.mu.Lock()
	g.clients[client] = struct{}{}
	g.mu.Unlock()

	go g.writeLoop(client)
	go g.readLoop(client)
}

func (g *Gateway) writeLoop(client *wsClient) {
	for msg := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			g.drop(client)
			return
		}
	}
}

// 客户端不会发业务消息，read loop只用来感知断开
func (g *Gateway) readLoop(client *wsClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			g.drop(client)
			return
		}
	}
}

func (g *Gateway) drop(client *wsClient) {
	g.mu.Lock()
	if _, ok := g.clients[client]; ok {
		delete(g.clients, client)
		close(client.send)
		_ = client.conn.Close()
	}
	g.mu.Unlock()
}

// Notify 广播。发不过去的慢客户端直接丢弃消息，不阻塞业务
func (g *Gateway) Notify(message string, severity consts.Severity) {
	payload, err := json.Marshal(model.Notification{
		Message:   message,
		Severity:  string(severity),
		DismissMs: consts.NotifyDismissMs,
		Ts:        time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	g.mu.Lock()
	for client := range g.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
	g.mu.Unlock()
}

// Close 断开所有客户端
func (g *Gateway) Close() {
	g.mu.Lock()
	for client := range g.clients {
		delete(g.clients, client)
		close(client.send)
		_ = client.conn.Close()
	}
	g.mu.Unlock()
}
