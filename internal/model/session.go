package model

// 账户、交易相关的请求/响应结构体

// 用户注册发起请求的参数
type RegisterReq struct {
	Username string `json:"username" validate:"required,username" label:"用户名"`
}

// 登陆/注册成功响应的结构体
type LoginRes struct {
	Token   string  `json:"token"`
	Timeout int     `json:"timeout"` // token有效期（秒）
	IsNew   bool    `json:"is_new"`  // 是否是新合成的账户
	Account Account `json:"account"`
}

type AccountGetRes struct {
	Account Account `json:"account"`
}

// 收藏/取消收藏某个币种
type WatchlistToggleReq struct {
	Symbol string `json:"symbol" validate:"required" label:"币种"`
}

type WatchlistToggleRes struct {
	Watchlist []string `json:"watchlist"`
	Added     bool     `json:"added"` // true表示这次是加入，false表示移除
}

// 交易请求。买入时input是USDT，卖出时input是持仓资产
type TradeReq struct {
	Side         string  `json:"side" validate:"required,oneof=buy sell" label:"方向"`
	InputSymbol  string  `json:"input_symbol" validate:"required" label:"支出币种"`
	OutputSymbol string  `json:"output_symbol" validate:"required" label:"收入币种"`
	AmountIn     float64 `json:"amount_in" validate:"required,gt=0" label:"支出数量"`
	AmountOut    float64 `json:"amount_out" validate:"required,gt=0" label:"收入数量"`
}

type TradeRes struct {
	Receipt string  `json:"receipt"` // 伪交易哈希，占位用，没有密码学意义
	Account Account `json:"account"`
}

// 通知消息，推给websocket客户端
type Notification struct {
	Message   string `json:"message"`
	Severity  string `json:"severity"` // success / error / info
	DismissMs int    `json:"dismiss_ms"`
	Ts        int64  `json:"ts"`
}

// Ticker 一条模拟价格
type Ticker struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Ts     int64   `json:"ts"`
}
