package core

import "time"

// FixedStep paces simulation ticks at a steady ticks-per-second rate for
// callers that do not get a frame clock from the engine.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive values select TicksPerSecond.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = TicksPerSecond
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the wall-clock duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait blocks until the next tick is due.
func (f *FixedStep) Wait() {
	for !f.ShouldStep() {
		time.Sleep(f.step / 4)
	}
}
