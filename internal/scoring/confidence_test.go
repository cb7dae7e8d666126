package scoring

import "testing"

func TestConfidenceBounds(t *testing.T) {
	c := NewConfidence()
	if got := c.Value(); got != BaseConfidence {
		t.Errorf("base confidence = %v, want %v", got, BaseConfidence)
	}

	c.Add(0.2).Add(0.15).Add(0.1).Add(0.1).Add(0.05)
	if got := c.Value(); got != 1.0 {
		t.Errorf("saturated confidence = %v, want 1.0", got)
	}
}

func TestConfidenceMonotonic(t *testing.T) {
	deltas := []float64{0.2, 0.15, 0.1, 0.05}

	c := NewConfidence()
	prev := c.Value()
	for _, d := range deltas {
		c.Add(d)
		v := c.Value()
		if v < prev {
			t.Fatalf("confidence decreased after adding %v: %v -> %v", d, prev, v)
		}
		prev = v
	}
}

func TestConfidenceIgnoresNegativeDeltas(t *testing.T) {
	c := NewConfidence().Add(0.2)
	before := c.Value()
	c.Add(-0.5)
	if got := c.Value(); got != before {
		t.Errorf("negative delta changed confidence: %v -> %v", before, got)
	}
}

func TestConfidenceAddIf(t *testing.T) {
	c := NewConfidence().AddIf(false, 0.3).AddIf(true, 0.1)
	if got := c.Value(); got != 0.6 {
		t.Errorf("confidence = %v, want 0.6", got)
	}
}
