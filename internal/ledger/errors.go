package ledger

import "errors"

var (
	// ErrNotAuthenticated 没有活跃账户
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInsufficientBalance 买入时USDT余额不足
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAsset 卖出时持仓不足或没有该持仓
	ErrInsufficientAsset = errors.New("insufficient asset")
	// ErrInvalidInput 非法参数（空用户名、非正数的交易数量）
	ErrInvalidInput = errors.New("invalid input")
)
