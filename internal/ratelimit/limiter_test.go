package ratelimit

import (
	"testing"
	"time"
)

func TestAdmitUnderThreshold(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if !l.Admit(1, base.Add(time.Duration(i)*200*time.Millisecond)) {
			t.Fatalf("message %d within threshold was rejected", i+1)
		}
	}
}

func TestAdmitRejectsBurst(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		l.Admit(1, base.Add(time.Duration(i)*100*time.Millisecond))
	}
	if l.Admit(1, base.Add(time.Second)) {
		t.Fatal("sixth message inside the window should be rejected")
	}
}

func TestRejectedMessagesExtendThrottle(t *testing.T) {
	l := NewLimiter(Config{Window: 5 * time.Second, Threshold: 5})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		l.Admit(1, base.Add(time.Duration(i)*500*time.Millisecond))
	}

	// 4.9s after the first message every recorded timestamp is still inside
	// the window: continued sending keeps the user throttled.
	if l.Admit(1, base.Add(4900*time.Millisecond)) {
		t.Fatal("sustained burst should stay rejected")
	}
}

func TestAdmitAfterWindowExpires(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		l.Admit(1, base.Add(time.Duration(i)*100*time.Millisecond))
	}
	if !l.Admit(1, base.Add(6*time.Second)) {
		t.Fatal("message after the window expired should be admitted")
	}
}

func TestUsersAreIndependent(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		l.Admit(1, base.Add(time.Duration(i)*100*time.Millisecond))
	}
	if !l.Admit(2, base.Add(time.Second)) {
		t.Fatal("one user's burst must not throttle another user")
	}
}

func TestNewLimiterDefaults(t *testing.T) {
	l := NewLimiter(Config{})
	if l.cfg.Window != 5*time.Second {
		t.Errorf("zero window defaulted to %v, want 5s", l.cfg.Window)
	}
	if l.cfg.Threshold != 5 {
		t.Errorf("zero threshold defaulted to %d, want 5", l.cfg.Threshold)
	}
}
