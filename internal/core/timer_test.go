package core

import (
	"testing"
	"time"
)

func TestFixedStepAccumulates(t *testing.T) {
	fs := NewFixedStep(200*time.Millisecond, 0)
	total := 0
	for i := 0; i < 12; i++ {
		total += fs.Advance(50 * time.Millisecond)
	}
	if total != 3 {
		t.Fatalf("12 frames of 50ms produced %d ticks, want 3", total)
	}
	if n := fs.Advance(0); n != 0 {
		t.Fatalf("zero delta produced %d ticks", n)
	}
	if n := fs.Advance(-time.Second); n != 0 {
		t.Fatalf("negative delta produced %d ticks", n)
	}
}

func TestFixedStepCap(t *testing.T) {
	fs := NewFixedStep(200*time.Millisecond, 1)
	if n := fs.Advance(time.Second); n != 1 {
		t.Fatalf("capped Advance returned %d, want 1", n)
	}
	if n := fs.Advance(100 * time.Millisecond); n != 0 {
		t.Fatalf("dropped ticks were carried over: %d", n)
	}
	fs.Advance(50 * time.Millisecond)
	if n := fs.Advance(50 * time.Millisecond); n != 1 {
		t.Fatalf("remainder not kept: got %d ticks", n)
	}
}

func TestFixedStepDefaultsAndReset(t *testing.T) {
	fs := NewFixedStep(0, 0)
	if fs.Interval() != 200*time.Millisecond {
		t.Fatalf("default interval %v", fs.Interval())
	}
	fs.Advance(150 * time.Millisecond)
	fs.Reset()
	if n := fs.Advance(100 * time.Millisecond); n != 0 {
		t.Fatalf("Reset kept accumulated time: %d ticks", n)
	}
	if Seconds(0.25) != 250*time.Millisecond {
		t.Fatalf("Seconds(0.25) = %v", Seconds(0.25))
	}
}
