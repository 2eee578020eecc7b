package ledger

import (
	"fmt"
	"lexchange/internal/consts"
	"lexchange/internal/model"
	"lexchange/utils"
	"strings"
)

// 账本变更引擎。所有函数都是纯函数：在入参账户的副本上计算，
// 成功返回新账户，失败返回错误且不产生任何可见修改

// ExecuteTrade 执行一笔买入或卖出
//
// 买入：input固定是USDT（余额），output是买到的资产；
// 卖出：input是卖掉的资产，output固定是USDT。
// amountIn/amountOut都必须为正数，否则拒绝。
// 成功时返回新账户和一个伪交易哈希作为回执
func ExecuteTrade(acct model.Account, isBuy bool, inputSymbol, outputSymbol string, amountIn, amountOut float64) (model.Account, string, error) {
	if amountIn <= 0 || amountOut <= 0 {
		return acct, "", fmt.Errorf("%w: trade amounts must be positive", ErrInvalidInput)
	}

	next := acct.Clone()

	if isBuy {
		if next.Balance < amountIn {
			return acct, "", fmt.Errorf("%w: need %.8f %s, have %.8f", ErrInsufficientBalance, amountIn, consts.QuoteCurrency, next.Balance)
		}
		next.Balance -= amountIn
		if asset, ok := next.Assets[outputSymbol]; ok {
			asset.Amount += amountOut
			// 价值按成本累加，不按市价重估
			asset.Value += amountIn
			next.Assets[outputSymbol] = asset
		} else {
			next.Assets[outputSymbol] = model.Asset{
				Symbol: outputSymbol,
				Name:   outputSymbol,
				Amount: amountOut,
				Value:  amountIn,
			}
		}
	} else {
		asset, ok := next.Assets[inputSymbol]
		if !ok || asset.Amount < amountIn {
			return acct, "", fmt.Errorf("%w: %s", ErrInsufficientAsset, inputSymbol)
		}
		asset.Amount -= amountIn
		// value可能减成负数，这里故意不做clamp，和成本记账的漂移保持一致
		asset.Value -= amountOut
		if asset.Amount <= consts.DustEpsilon {
			// 粉尘清理
			delete(next.Assets, inputSymbol)
		} else {
			next.Assets[inputSymbol] = asset
		}
		next.Balance += amountOut
	}

	return next, newReceipt(), nil
}

// ToggleWatchlist 收藏/取消收藏。符号统一小写，已有则移除，没有则追加
func ToggleWatchlist(acct model.Account, symbol string) (model.Account, bool) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	next := acct.Clone()
	for i, s := range next.Watchlist {
		if s == symbol {
			next.Watchlist = append(next.Watchlist[:i], next.Watchlist[i+1:]...)
			return next, false
		}
	}
	next.Watchlist = append(next.Watchlist, symbol)
	return next, true
}

// 伪交易哈希，长得像链上tx hash但只是占位
func newReceipt() string {
	return "0x" + utils.RandHex(32)
}
