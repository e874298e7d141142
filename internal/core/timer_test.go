package core

import (
	"testing"
	"time"
)

func TestTimerLifecycle(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	var timer Timer

	if timer.Armed() {
		t.Fatal("zero Timer should be disarmed")
	}
	if timer.Due(clock.Now()) {
		t.Fatal("disarmed timer should never be due")
	}

	timer.Arm(clock.Now(), time.Second)
	if !timer.Armed() {
		t.Fatal("Arm should arm the timer")
	}
	if got := timer.Remaining(clock.Now()); got != time.Second {
		t.Errorf("Remaining() = %v, expected 1s", got)
	}

	clock.Advance(999 * time.Millisecond)
	if timer.Due(clock.Now()) {
		t.Error("timer should not be due before its deadline")
	}

	clock.Advance(time.Millisecond)
	if !timer.Due(clock.Now()) {
		t.Error("timer should be due exactly at its deadline")
	}

	if !timer.Fire() {
		t.Error("first Fire should report true")
	}
	if timer.Fire() {
		t.Error("second Fire should report false (one-shot)")
	}
	if timer.Armed() || timer.Due(clock.Now()) {
		t.Error("fired timer should be disarmed")
	}
}

func TestTimerCancelAndRearm(t *testing.T) {
	now := time.Unix(0, 0)
	var timer Timer

	timer.Arm(now, time.Second)
	timer.Cancel()
	if timer.Armed() {
		t.Error("Cancel should disarm")
	}
	if timer.Fire() {
		t.Error("cancelled timer should not fire")
	}

	timer.Arm(now, time.Second)
	timer.Arm(now, 3*time.Second)
	if timer.Due(now.Add(2 * time.Second)) {
		t.Error("re-arming should replace the deadline")
	}
	if !timer.Due(now.Add(3 * time.Second)) {
		t.Error("timer should be due at the replaced deadline")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev       Event
		expected string
	}{
		{QuitEvent(), "quit"},
		{PointerDown(3, 4), "pointerDown(3,4)"},
		{KeyDown("r"), "keyDown(r)"},
		{TimerExpired(), "timerExpired"},
	}

	for _, tc := range tests {
		if got := tc.ev.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
