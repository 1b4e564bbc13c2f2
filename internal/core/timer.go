package core

import "time"

// FixedStep turns variable frame deltas into ticks at a steady simulated
// interval. It does not read the wall clock; callers feed it elapsed time.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	maxTicks    int
}

// NewFixedStep constructs a FixedStep that fires every interval and reports
// at most maxTicks ticks per Advance. A maxTicks of zero or less means no
// cap.
func NewFixedStep(interval time.Duration, maxTicks int) *FixedStep {
	fs := &FixedStep{maxTicks: maxTicks}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the tick interval. Non-positive intervals fall back to
// 200ms.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	f.step = interval
}

// Interval returns the tick interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Advance accumulates dt and returns how many ticks are due. Ticks beyond the
// cap are dropped so a long frame cannot trigger a burst of catch-up work.
func (f *FixedStep) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	f.accumulator += dt
	ticks := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(ticks) * f.step
	if f.maxTicks > 0 && ticks > f.maxTicks {
		ticks = f.maxTicks
	}
	return ticks
}

// Reset discards any partially accumulated time.
func (f *FixedStep) Reset() { f.accumulator = 0 }

// Seconds converts a float seconds delta into a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
