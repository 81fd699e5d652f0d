package core

import "time"

// FixedStep paces simulation steps at a steady rate independent of the
// frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting the given steps per second.
// The first call to ShouldStep fires immediately.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(sps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 60
	}
	f.step = time.Second / time.Duration(sps)
}

// Rate returns the current steps per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// ShouldStep reports whether the simulation should advance by one step.
// Missed steps are not replayed: at most one step fires per call.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	if f.accumulator > f.step {
		f.accumulator = f.step
	}
	return true
}
