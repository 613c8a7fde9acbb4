package book

import (
	"testing"
	"time"
)

func testSnapshot(ask, bid float64) *Snapshot {
	var s Snapshot
	s.AskPrice[0], s.AskQty[0] = ask, 1
	s.BidPrice[0], s.BidQty[0] = bid, 1
	s.AskSize, s.BidSize = 1, 1
	s.CapturedAt = time.Now()
	return &s
}

func TestSlotPublishTake(t *testing.T) {
	var slot Slot
	var dst Snapshot

	if slot.TryTake(&dst) {
		t.Fatal("empty slot must not be takeable")
	}

	slot.Publish(testSnapshot(100, 99))
	if !slot.Fresh() {
		t.Fatal("publish must raise fresh")
	}

	if !slot.TryTake(&dst) {
		t.Fatal("fresh slot must be takeable")
	}
	if dst.AskPrice[0] != 100 || dst.BidPrice[0] != 99 {
		t.Errorf("copy mismatch: ask=%v bid=%v", dst.AskPrice[0], dst.BidPrice[0])
	}
	if slot.Fresh() {
		t.Error("take must clear fresh")
	}
	if slot.TryTake(&dst) {
		t.Error("second take without publish must fail")
	}
}

func TestSlotCoalescesBurst(t *testing.T) {
	var slot Slot
	var dst Snapshot

	for i := 0; i < 100; i++ {
		slot.Publish(testSnapshot(float64(100+i), float64(99+i)))
	}

	if !slot.TryTake(&dst) {
		t.Fatal("slot must be fresh after burst")
	}
	if dst.AskPrice[0] != 199 {
		t.Errorf("take must observe the last publish, got ask %v", dst.AskPrice[0])
	}
	if slot.TryTake(&dst) {
		t.Error("burst must coalesce into a single visible update")
	}
}

func TestSlotTakeDoesNotTouchDestWhenStale(t *testing.T) {
	var slot Slot
	var dst Snapshot
	dst.AskPrice[0] = 42

	if slot.TryTake(&dst) {
		t.Fatal("stale slot took")
	}
	if dst.AskPrice[0] != 42 {
		t.Error("failed take must leave dst untouched")
	}
}
