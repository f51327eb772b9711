package control

import (
	"testing"
	"time"
)

func TestFreshStateIsIdle(t *testing.T) {
	s := NewState(0)
	if s.Stopped() || s.Hot() {
		t.Fatal("fresh state must be neither stopped nor hot")
	}
}

func TestActivityAndCooldown(t *testing.T) {
	s := NewState(20 * time.Millisecond)
	s.SignalActivity()
	if !s.Hot() {
		t.Fatal("activity must set the hot flag")
	}
	s.PollCooldown()
	if !s.Hot() {
		t.Fatal("cooldown must not clear a fresh hot flag")
	}
	time.Sleep(40 * time.Millisecond)
	s.PollCooldown()
	if s.Hot() {
		t.Fatal("cooldown must clear the hot flag after the window")
	}
}

func TestActivityExtendsHotWindow(t *testing.T) {
	s := NewState(50 * time.Millisecond)
	s.SignalActivity()
	time.Sleep(30 * time.Millisecond)
	s.SignalActivity() // refresh inside the window
	time.Sleep(30 * time.Millisecond)
	s.PollCooldown()
	if !s.Hot() {
		t.Fatal("refreshed activity must keep the state hot")
	}
}

func TestShutdownLatches(t *testing.T) {
	s := NewState(0)
	s.Shutdown()
	if !s.Stopped() {
		t.Fatal("shutdown must set the stop flag")
	}
	s.Shutdown() // idempotent
	if !s.Stopped() {
		t.Fatal("stop flag must latch")
	}
}

func TestFlagsExposeLiveWords(t *testing.T) {
	s := NewState(0)
	stop, hot := s.Flags()
	if *stop != 0 || *hot != 0 {
		t.Fatal("flag words must start clear")
	}
	s.Shutdown()
	s.SignalActivity()
	if *stop == 0 || *hot == 0 {
		t.Fatal("flag words must reflect state transitions")
	}
}

func TestStatesAreIndependent(t *testing.T) {
	a := NewState(0)
	b := NewState(0)
	a.Shutdown()
	if b.Stopped() {
		t.Fatal("two pipelines must not share run state")
	}
}
