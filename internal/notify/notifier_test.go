package notify

import (
	"lexchange/internal/consts"
	"testing"
)

type countingNotifier struct {
	n int
}

func (c *countingNotifier) Notify(message string, severity consts.Severity) {
	c.n++
}

func TestMultiNotifierFanOut(t *testing.T) {
	a := &countingNotifier{}
	b := &countingNotifier{}
	multi := MultiNotifier{a, b}

	multi.Notify("hello", consts.SeverityInfo)
	multi.Notify("world", consts.SeverityError)

	if a.n != 2 || b.n != 2 {
		t.Fatalf("fan-out counts: a=%d b=%d, want 2/2", a.n, b.n)
	}
}

func TestEmptyMultiNotifier(t *testing.T) {
	var multi MultiNotifier
	// 没有下游时也不能panic
	multi.Notify("dropped", consts.SeveritySuccess)
}
