package session

import (
	"bytes"
	"context"
	"lexchange/internal/model"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testRecord(version int64, balance float64) *Record {
	return &Record{
		Version: version,
		Account: model.Account{
			Address:  "0xabc",
			Username: "demo_trader",
			Balance:  balance,
			Assets:   map[string]model.Asset{},
		},
		UpdatedAt: time.Now(),
	}
}

func TestMemoryStoreCAS(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Load(ctx); err != ErrNoRecord {
		t.Fatalf("empty store: want ErrNoRecord, got %v", err)
	}

	// 空槽当作版本0，第一次提交必须是版本1
	if err := store.Save(ctx, testRecord(2, 100)); err != ErrVersionConflict {
		t.Fatalf("skipping version: want ErrVersionConflict, got %v", err)
	}
	if err := store.Save(ctx, testRecord(1, 100)); err != nil {
		t.Fatalf("save v1 failed: %v", err)
	}

	// 重复提交同版本是冲突
	if err := store.Save(ctx, testRecord(1, 200)); err != ErrVersionConflict {
		t.Fatalf("duplicate version: want ErrVersionConflict, got %v", err)
	}
	if err := store.Save(ctx, testRecord(2, 200)); err != nil {
		t.Fatalf("save v2 failed: %v", err)
	}

	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Version != 2 || rec.Account.Balance != 200 {
		t.Fatalf("loaded %+v", rec)
	}

	// Load出来的是副本，改它不能影响存储
	rec.Account.Balance = 999
	again, _ := store.Load(ctx)
	if again.Account.Balance != 200 {
		t.Fatalf("load returned a shared reference")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Load(ctx); err != ErrNoRecord {
		t.Fatalf("after clear: want ErrNoRecord, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path, "")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if err := store.Save(ctx, testRecord(1, 10000)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// 新的store实例模拟进程重启
	reopened, err := NewFileStore(path, "")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	rec, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Version != 1 || rec.Account.Balance != 10000 {
		t.Fatalf("loaded %+v", rec)
	}

	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := reopened.Load(ctx); err != ErrNoRecord {
		t.Fatalf("after clear: want ErrNoRecord, got %v", err)
	}
	// 清空不存在的文件不算错
	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestFileStoreMalformedContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatalf("write garbage failed: %v", err)
	}

	store, err := NewFileStore(path, "")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	// 损坏的内容当作空槽，绝不报错崩进程
	if _, err := store.Load(ctx); err != ErrNoRecord {
		t.Fatalf("corrupt file: want ErrNoRecord, got %v", err)
	}
	// 空槽语义下保存版本1要能成功，覆盖掉坏文件
	if err := store.Save(ctx, testRecord(1, 100)); err != nil {
		t.Fatalf("save over corrupt file failed: %v", err)
	}
	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load after repair failed: %v", err)
	}
	if rec.Account.Balance != 100 {
		t.Fatalf("loaded %+v", rec)
	}
}

func TestFileStoreSealed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.bin")

	store, err := NewFileStore(path, "hunter2")
	if err != nil {
		t.Fatalf("new sealed store failed: %v", err)
	}
	if err := store.Save(ctx, testRecord(1, 42)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// 磁盘上不应该有明文
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw failed: %v", err)
	}
	if bytes.Contains(raw, []byte("demo_trader")) {
		t.Fatalf("sealed file leaks plaintext")
	}

	// 错误的口令等于打不开，按空槽处理
	wrongKey, err := NewFileStore(path, "letmein")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if _, err := wrongKey.Load(ctx); err != ErrNoRecord {
		t.Fatalf("wrong key: want ErrNoRecord, got %v", err)
	}

	// 正确口令能读回来
	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Account.Balance != 42 {
		t.Fatalf("loaded %+v", rec)
	}
}
