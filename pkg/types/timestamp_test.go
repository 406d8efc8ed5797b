package types

import (
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	ts := TimestampFrom(now)

	if ts.Seconds != now.Unix() {
		t.Fatalf("seconds mismatch: %d vs %d", ts.Seconds, now.Unix())
	}
	if ts.Nanoseconds != 589793000 {
		t.Fatalf("nanoseconds mismatch: %d", ts.Nanoseconds)
	}
	if !ts.Time().Equal(now) {
		t.Fatalf("round trip drifted: %v vs %v", ts.Time(), now)
	}
}

func TestTimestampPtrNil(t *testing.T) {
	if TimestampPtr(nil) != nil {
		t.Fatal("nil time should map to nil timestamp")
	}
	now := time.Now()
	ts := TimestampPtr(&now)
	if ts == nil || ts.IsZero() {
		t.Fatal("non-nil time should map to a populated timestamp")
	}
}
