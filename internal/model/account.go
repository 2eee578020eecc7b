package model

// Asset 一条持仓。Value是成本近似值：买入加上花掉的USDT，卖出减去收到的USDT，
// 从不按市价重估，所以会和真实市值漂移，这是产品层面接受的行为
type Asset struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Value  float64 `json:"value"`
}

// Account 每个会话唯一的账户记录
type Account struct {
	Address   string           `json:"address"` // 展示用的伪地址，不是真实链上地址
	Username  string           `json:"username"`
	Balance   float64          `json:"balance"` // USDT余额
	Watchlist []string         `json:"watchlist"`
	Assets    map[string]Asset `json:"assets"` // symbol -> 持仓
}

// Clone 深拷贝。所有修改都在副本上做，成功才替换，保证失败时原账户不动
func (a Account) Clone() Account {
	cp := a
	cp.Watchlist = make([]string, len(a.Watchlist))
	copy(cp.Watchlist, a.Watchlist)
	cp.Assets = make(map[string]Asset, len(a.Assets))
	for k, v := range a.Assets {
		cp.Assets[k] = v
	}
	return cp
}

// HasWatched watchlist里是否已有该符号（存的都是小写）
func (a Account) HasWatched(symbol string) bool {
	for _, s := range a.Watchlist {
		if s == symbol {
			return true
		}
	}
	return false
}
