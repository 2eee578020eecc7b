package session

import (
	"context"
	"errors"
	"lexchange/conf"
	"lexchange/internal/ledger"
	"lexchange/internal/model"
	"testing"
)

func testDemoConfig() conf.DemoConfig {
	return conf.DemoConfig{
		Username:      "demo_trader",
		Balance:       10000,
		RegisterBonus: 10000,
		Watchlist:     []string{"btc", "eth"},
		Assets: []conf.DemoAsset{
			{Symbol: "btc", Name: "Bitcoin", Amount: 0.05, Value: 3200},
		},
	}
}

func TestLoginSynthesizesDemoAccount(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), testDemoConfig())

	acct, isNew, err := mgr.Login(ctx)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !isNew {
		t.Fatalf("first login on empty store should synthesize a new account")
	}
	if acct.Username != "demo_trader" || acct.Balance != 10000 {
		t.Fatalf("unexpected demo account: %+v", acct)
	}
	if acct.Assets["btc"].Amount != 0.05 {
		t.Fatalf("demo asset missing: %+v", acct.Assets)
	}
	if mgr.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", mgr.State())
	}
}

func TestLoginRestoresExistingAccount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewManager(store, testDemoConfig())
	acct, _, err := first.Login(ctx)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	// 改动一下再提交，确保恢复的是改动后的存档
	_, version, ok := first.Snapshot()
	if !ok {
		t.Fatalf("no snapshot after login")
	}
	acct.Balance = 1234
	if err := first.Commit(ctx, acct, version); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// 新的manager模拟进程重启，login必须原样恢复，不得用演示数据覆盖
	second := NewManager(store, testDemoConfig())
	restored, isNew, err := second.Login(ctx)
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if isNew {
		t.Fatalf("login over existing record must not synthesize a new account")
	}
	if restored.Balance != 1234 {
		t.Fatalf("restored balance = %f, want 1234", restored.Balance)
	}
	if restored.Address != acct.Address {
		t.Fatalf("restored a different account")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	mgr := NewManager(store, testDemoConfig())
	if err := mgr.Restore(ctx); err != nil {
		t.Fatalf("restore on empty store: %v", err)
	}
	if mgr.State() != StateAnonymous {
		t.Fatalf("state = %s, want anonymous", mgr.State())
	}
	if _, _, ok := mgr.Snapshot(); ok {
		t.Fatalf("anonymous manager should not return a snapshot")
	}

	if _, _, err := mgr.Login(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	other := NewManager(store, testDemoConfig())
	if err := other.Restore(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if other.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", other.State())
	}
}

func TestRegisterEmptyUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mgr := NewManager(store, testDemoConfig())

	if _, _, err := mgr.Login(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	for _, username := range []string{"", "   ", "\t"} {
		if _, err := mgr.Register(ctx, username); !errors.Is(err, ledger.ErrInvalidInput) {
			t.Fatalf("register(%q): want ErrInvalidInput, got %v", username, err)
		}
	}
	// 失败的注册不能碰现有会话
	if mgr.State() != StateAuthenticated {
		t.Fatalf("failed register destroyed the session")
	}
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("failed register cleared the store: %v", err)
	}
}

func TestRegisterCreatesFreshAccount(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), testDemoConfig())

	old, _, err := mgr.Login(ctx)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	acct, err := mgr.Register(ctx, "  alice  ")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if acct.Username != "alice" {
		t.Fatalf("username = %q, want trimmed %q", acct.Username, "alice")
	}
	if acct.Address == old.Address {
		t.Fatalf("register reused the old address")
	}
	if acct.Balance != 10000 {
		t.Fatalf("balance = %f, want register bonus", acct.Balance)
	}
	usdt := acct.Assets["USDT"]
	if usdt.Amount != 10000 || usdt.Value != 10000 {
		t.Fatalf("bonus USDT position = %+v", usdt)
	}
	// 旧账户的持仓不应该带过来
	if _, ok := acct.Assets["btc"]; ok {
		t.Fatalf("demo assets leaked into the new account")
	}
}

func TestLogoutClearsStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mgr := NewManager(store, testDemoConfig())

	if _, _, err := mgr.Login(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := mgr.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if mgr.State() != StateAnonymous {
		t.Fatalf("state after logout = %s", mgr.State())
	}
	if _, err := store.Load(ctx); err != ErrNoRecord {
		t.Fatalf("store should be empty after logout, got %v", err)
	}

	// 登出后再登录拿到的是全新的演示账户
	acct, isNew, err := mgr.Login(ctx)
	if err != nil {
		t.Fatalf("relogin failed: %v", err)
	}
	if !isNew {
		t.Fatalf("relogin after logout should synthesize a fresh account")
	}
	if acct.Balance != 10000 {
		t.Fatalf("fresh account balance = %f", acct.Balance)
	}
}

func TestCommitRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), testDemoConfig())
	if err := mgr.Restore(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	err := mgr.Commit(ctx, model.Account{Address: "0x1", Balance: 1}, 0)
	if !errors.Is(err, ledger.ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
}

func TestCommitStaleSnapshotRejected(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), testDemoConfig())
	if _, _, err := mgr.Login(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 同一个manager上的两个并发写者各拿一份快照
	first, verFirst, _ := mgr.Snapshot()
	second, verSecond, _ := mgr.Snapshot()

	first.Balance -= 100
	if err := mgr.Commit(ctx, first, verFirst); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	// 第二份快照已经过期，提交必须被拒绝，而不是把第一笔改动覆盖掉
	second.Balance -= 50
	if err := mgr.Commit(ctx, second, verSecond); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("stale commit: want ErrVersionConflict, got %v", err)
	}

	acct, _, ok := mgr.Snapshot()
	if !ok {
		t.Fatalf("no snapshot after conflict")
	}
	if acct.Balance != 9900 {
		t.Fatalf("balance = %f, want 9900 (first commit preserved)", acct.Balance)
	}
}

func TestCommitVersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := NewManager(store, testDemoConfig())
	if _, _, err := a.Login(ctx); err != nil {
		t.Fatalf("login a failed: %v", err)
	}

	// 第二个manager抢先提交了一个新版本
	b := NewManager(store, testDemoConfig())
	if _, _, err := b.Login(ctx); err != nil {
		t.Fatalf("login b failed: %v", err)
	}
	acctB, verB, _ := b.Snapshot()
	acctB.Balance = 500
	if err := b.Commit(ctx, acctB, verB); err != nil {
		t.Fatalf("commit b failed: %v", err)
	}

	// a手里的版本已经过期，提交必须被拒绝
	acctA, verA, _ := a.Snapshot()
	acctA.Balance = 999
	if err := a.Commit(ctx, acctA, verA); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("want ErrVersionConflict, got %v", err)
	}

	// 存储里保留的是b的提交
	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Account.Balance != 500 {
		t.Fatalf("store balance = %f, want 500", rec.Account.Balance)
	}
}
