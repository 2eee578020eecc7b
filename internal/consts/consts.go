package consts

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	SessionCtx  = "session_ctx"
	JWTTokenCtx = "token_ctx"

	// QuoteCurrency 计价货币，所有交易都以它计价
	QuoteCurrency = "USDT"

	// DustEpsilon 粉尘阈值，卖出后持仓量小于等于它时整个资产条目被移除
	DustEpsilon = 1e-6

	// 会话槽的固定key，存储里永远只有这一条记录
	SessionSlotKey = "lexchange_session"

	// 余额缓存
	AccountCachePrefix = "Lex_Account_slot:"
)

// 通知级别
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// 通知在客户端的自动消失时间（毫秒），只是给前端的提示
const NotifyDismissMs = 4000

// 交易方向
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

func (s TradeSide) IsBuy() bool {
	return s == TradeSideBuy
}
