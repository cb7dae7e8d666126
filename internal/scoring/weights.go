// Package scoring provides the shared building blocks of the MantleMusicFi
// scoring engines: validated weight profiles, ordered threshold tables,
// confidence accumulation, and bounded-concurrency batch execution.
//
// Everything here is pure and deterministic. Engines are constructed once
// with immutable configuration and may be shared across goroutines.
package scoring

import (
	"fmt"
	"math"
	"sort"
)

// WeightTolerance is the floating tolerance used when validating that the
// weights of a profile sum to 1.0.
const WeightTolerance = 1e-6

// WeightProfile is a validated mapping from category name to weight.
// Weights always sum to 1.0 within WeightTolerance at construction time;
// Aggregate renormalizes on the fly when some categories are absent.
type WeightProfile struct {
	name    string
	weights map[string]float64
}

// NewWeightProfile validates and builds a weight profile.
func NewWeightProfile(name string, weights map[string]float64) (*WeightProfile, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("weight profile %q: no categories", name)
	}
	sum := 0.0
	for cat, w := range weights {
		if w <= 0 || w > 1 {
			return nil, fmt.Errorf("weight profile %q: category %q weight %v out of (0,1]", name, cat, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, fmt.Errorf("weight profile %q: weights sum to %v, want 1.0", name, sum)
	}
	copied := make(map[string]float64, len(weights))
	for cat, w := range weights {
		copied[cat] = w
	}
	return &WeightProfile{name: name, weights: copied}, nil
}

// MustWeightProfile builds a profile and panics on invalid weights.
// Intended for package-level tables validated at startup.
func MustWeightProfile(name string, weights map[string]float64) *WeightProfile {
	p, err := NewWeightProfile(name, weights)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the profile name.
func (p *WeightProfile) Name() string { return p.name }

// Weight returns the weight for a category.
func (p *WeightProfile) Weight(category string) (float64, bool) {
	w, ok := p.weights[category]
	return w, ok
}

// Categories returns the profile's category names in sorted order.
func (p *WeightProfile) Categories() []string {
	cats := make([]string, 0, len(p.weights))
	for cat := range p.weights {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Weights returns a copy of the category→weight map.
func (p *WeightProfile) Weights() map[string]float64 {
	out := make(map[string]float64, len(p.weights))
	for cat, w := range p.weights {
		out[cat] = w
	}
	return out
}

// Aggregate computes the weighted average of the sub-scores present in the
// breakdown. A category with no sub-score is excluded from both numerator
// and denominator, so the active weights are effectively renormalized to
// sum to 1.0. Breakdown entries without a matching profile category are
// ignored.
func (p *WeightProfile) Aggregate(breakdown map[string]float64) (float64, error) {
	var weighted, active float64
	for cat, score := range breakdown {
		w, ok := p.weights[cat]
		if !ok {
			continue
		}
		weighted += score * w
		active += w
	}
	if active <= 0 {
		return 0, fmt.Errorf("weight profile %q: no scored categories overlap the profile", p.name)
	}
	return weighted / active, nil
}
