package bot

import "testing"

func TestSMACrossBuy(t *testing.T) {
	sig := SMACrossSignal{FastPeriod: 2, SlowPeriod: 4}

	// 先跌后涨，快线在最后一根上穿慢线
	closes := []float64{110, 108, 106, 104, 102, 100, 101, 118}
	if got := sig.Calculate(closes); got != SignalBuy {
		t.Fatalf("expected buy, got %s", got)
	}
}

func TestSMACrossSell(t *testing.T) {
	sig := SMACrossSignal{FastPeriod: 2, SlowPeriod: 4}

	closes := []float64{100, 102, 104, 106, 108, 110, 109, 92}
	if got := sig.Calculate(closes); got != SignalSell {
		t.Fatalf("expected sell, got %s", got)
	}
}

func TestSMACrossHoldInTrend(t *testing.T) {
	sig := SMACrossSignal{FastPeriod: 2, SlowPeriod: 4}

	// 持续上涨中途不应再次触发
	closes := []float64{100, 104, 108, 112, 116, 120, 124, 128}
	if got := sig.Calculate(closes); got != SignalHold {
		t.Fatalf("expected hold, got %s", got)
	}
}

func TestSMACrossInsufficientData(t *testing.T) {
	sig := SMACrossSignal{FastPeriod: 5, SlowPeriod: 20}
	if got := sig.Calculate([]float64{1, 2, 3}); got != SignalHold {
		t.Fatalf("expected hold on short window, got %s", got)
	}
}
