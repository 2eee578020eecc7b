package session

import (
	"context"
	"fmt"
	"lexchange/conf"
	"lexchange/internal/consts"
	"lexchange/internal/ledger"
	"lexchange/internal/model"
	"lexchange/pkg/logger"
	"lexchange/utils"
	"strings"
	"sync"
	"time"
)

// 账户生命周期管理。整个进程只有一个会话（和源产品的单浏览器标签对应），
// Manager持有唯一的Account值，所有修改走快照+Commit，存储层用版本号做CAS

type State int32

const (
	StateAnonymous State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

type Manager struct {
	mu      sync.Mutex
	store   Store
	demo    conf.DemoConfig
	state   State
	acct    *model.Account // 当前账户，Anonymous时为nil
	version int64          // 对应存储里的版本号
}

func NewManager(store Store, demo conf.DemoConfig) *Manager {
	return &Manager{
		store: store,
		demo:  demo,
		state: StateLoading,
	}
}

// Restore 启动时查一次存储：有记录则直接进入Authenticated，没有则Anonymous
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restoreLocked(ctx)
}

func (m *Manager) restoreLocked(ctx context.Context) error {
	m.state = StateLoading
	rec, err := m.store.Load(ctx)
	if err != nil {
		if err == ErrNoRecord {
			m.state = StateAnonymous
			m.acct = nil
			m.version = 0
			return nil
		}
		m.state = StateAnonymous
		return err
	}
	acct := rec.Account.Clone()
	m.acct = &acct
	m.version = rec.Version
	m.state = StateAuthenticated
	return nil
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot 返回当前账户的深拷贝和它对应的版本号，没有活跃账户时ok为false。
// 版本号在Commit时回传，用来检测快照读出之后被别的写者改过
func (m *Manager) Snapshot() (model.Account, int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated || m.acct == nil {
		return model.Account{}, 0, false
	}
	return m.acct.Clone(), m.version, true
}

// Login 有存档就恢复存档，没有就合成演示账户。
// 对已有存档是幂等的，永远不会用演示数据覆盖真实存档
func (m *Manager) Login(ctx context.Context) (model.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateLoading
	rec, err := m.store.Load(ctx)
	if err == nil {
		acct := rec.Account.Clone()
		m.acct = &acct
		m.version = rec.Version
		m.state = StateAuthenticated
		return m.acct.Clone(), false, nil
	}
	if err != ErrNoRecord {
		m.state = StateAnonymous
		return model.Account{}, false, err
	}

	// 空槽，合成演示账户
	acct := m.newDemoAccount()
	if err := m.commitLocked(ctx, acct); err != nil {
		m.state = StateAnonymous
		return model.Account{}, false, err
	}
	m.state = StateAuthenticated
	logger.Infof("合成演示账户 %s，余额 %.2f %s", acct.Address, acct.Balance, consts.QuoteCurrency)
	return m.acct.Clone(), true, nil
}

// Register 注册一个全新账户：固定的注册赠送余额，外加等额的USDT持仓条目。
// 之前的会话直接丢弃。用户名为空或纯空白时失败，什么都不会创建
func (m *Manager) Register(ctx context.Context, username string) (model.Account, error) {
	if strings.TrimSpace(username) == "" {
		return model.Account{}, fmt.Errorf("%w: username is empty", ledger.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateLoading
	// 丢弃旧会话，槽位清空后版本从0重新开始
	if err := m.store.Clear(ctx); err != nil {
		m.state = StateAnonymous
		return model.Account{}, err
	}
	m.version = 0

	bonus := m.demo.RegisterBonus
	acct := model.Account{
		Address:  newAddress(),
		Username: strings.TrimSpace(username),
		Balance:  bonus,
		Assets: map[string]model.Asset{
			consts.QuoteCurrency: {
				Symbol: consts.QuoteCurrency,
				Name:   consts.QuoteCurrency,
				Amount: bonus,
				Value:  bonus,
			},
		},
	}
	if err := m.commitLocked(ctx, acct); err != nil {
		m.state = StateAnonymous
		return model.Account{}, err
	}
	m.state = StateAuthenticated
	return m.acct.Clone(), nil
}

// Logout 销毁当前会话并同步清空存储槽
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.acct = nil
	m.version = 0
	m.state = StateAnonymous
	return nil
}

// Commit 提交一个新的账户快照并立即落盘。expect是快照读出时的版本号：
// 它和当前版本不一致说明改动基于过期快照，返回ErrVersionConflict，内存状态不变。
// 互斥锁只保证单次写的原子性，读-改-写整个周期的串行化靠这个版本检查
func (m *Manager) Commit(ctx context.Context, acct model.Account, expect int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return ledger.ErrNotAuthenticated
	}
	if expect != m.version {
		return ErrVersionConflict
	}
	return m.commitLocked(ctx, acct)
}

func (m *Manager) commitLocked(ctx context.Context, acct model.Account) error {
	rec := &Record{
		Version:   m.version + 1,
		Account:   acct.Clone(),
		UpdatedAt: time.Now(),
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return err
	}
	owned := acct.Clone()
	m.acct = &owned
	m.version = rec.Version
	return nil
}

// 合成固定的演示账户
func (m *Manager) newDemoAccount() model.Account {
	acct := model.Account{
		Address:   newAddress(),
		Username:  m.demo.Username,
		Balance:   m.demo.Balance,
		Watchlist: append([]string(nil), m.demo.Watchlist...),
		Assets:    make(map[string]model.Asset, len(m.demo.Assets)),
	}
	for _, a := range m.demo.Assets {
		acct.Assets[a.Symbol] = model.Asset{
			Symbol: a.Symbol,
			Name:   a.Name,
			Amount: a.Amount,
			Value:  a.Value,
		}
	}
	return acct
}

// 展示用的伪地址
func newAddress() string {
	return "0x" + utils.RandHex(20)
}
