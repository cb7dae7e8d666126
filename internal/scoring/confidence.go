package scoring

// BaseConfidence is the starting confidence before any data-sufficiency
// signal is counted.
const BaseConfidence = 0.5

// Confidence accumulates data-sufficiency increments on top of the base.
// The final value is clamped to [BaseConfidence, 1], so adding a signal can
// never lower it below the base or push it past 1.
type Confidence struct {
	value float64
}

// NewConfidence returns an accumulator at the base confidence.
func NewConfidence() *Confidence {
	return &Confidence{value: BaseConfidence}
}

// Add adds a sufficiency increment. Non-positive deltas are ignored so
// confidence is monotonic in the signals added.
func (c *Confidence) Add(delta float64) *Confidence {
	if delta > 0 {
		c.value += delta
	}
	return c
}

// AddIf adds the increment only when the sufficiency condition holds.
func (c *Confidence) AddIf(cond bool, delta float64) *Confidence {
	if cond {
		c.Add(delta)
	}
	return c
}

// Value returns the accumulated confidence, clamped to [BaseConfidence, 1].
func (c *Confidence) Value() float64 {
	return Clamp(c.value, BaseConfidence, 1.0)
}
