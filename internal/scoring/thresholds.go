package scoring

import "fmt"

// Band is a single classification boundary: a label and its cutoff.
type Band struct {
	Label  string
	Cutoff float64
}

// ThresholdTable maps a score to exactly one label via ordered bands plus a
// catch-all fallback. Descending tables match the first band whose cutoff the
// score meets or exceeds (credit grades); ascending tables match the first
// band whose cutoff the score does not exceed (risk levels). Either way every
// score classifies to exactly one label.
type ThresholdTable struct {
	bands     []Band
	fallback  string
	ascending bool
}

// NewDescendingTable builds a table where Classify returns the first band
// with score >= cutoff. Cutoffs must be strictly descending.
func NewDescendingTable(bands []Band, fallback string) (*ThresholdTable, error) {
	if err := validateBands(bands, fallback, false); err != nil {
		return nil, err
	}
	return &ThresholdTable{bands: append([]Band(nil), bands...), fallback: fallback}, nil
}

// NewAscendingTable builds a table where Classify returns the first band
// with score <= cutoff. Cutoffs must be strictly ascending.
func NewAscendingTable(bands []Band, fallback string) (*ThresholdTable, error) {
	if err := validateBands(bands, fallback, true); err != nil {
		return nil, err
	}
	return &ThresholdTable{bands: append([]Band(nil), bands...), fallback: fallback, ascending: true}, nil
}

// MustDescendingTable is NewDescendingTable for package-level tables.
func MustDescendingTable(bands []Band, fallback string) *ThresholdTable {
	t, err := NewDescendingTable(bands, fallback)
	if err != nil {
		panic(err)
	}
	return t
}

// MustAscendingTable is NewAscendingTable for package-level tables.
func MustAscendingTable(bands []Band, fallback string) *ThresholdTable {
	t, err := NewAscendingTable(bands, fallback)
	if err != nil {
		panic(err)
	}
	return t
}

func validateBands(bands []Band, fallback string, ascending bool) error {
	if len(bands) == 0 {
		return fmt.Errorf("threshold table: no bands")
	}
	if fallback == "" {
		return fmt.Errorf("threshold table: fallback label required")
	}
	seen := map[string]bool{fallback: true}
	for i, b := range bands {
		if b.Label == "" {
			return fmt.Errorf("threshold table: band %d has empty label", i)
		}
		if seen[b.Label] {
			return fmt.Errorf("threshold table: duplicate label %q", b.Label)
		}
		seen[b.Label] = true
		if i == 0 {
			continue
		}
		prev := bands[i-1].Cutoff
		if ascending && b.Cutoff <= prev {
			return fmt.Errorf("threshold table: cutoffs not strictly ascending at %q", b.Label)
		}
		if !ascending && b.Cutoff >= prev {
			return fmt.Errorf("threshold table: cutoffs not strictly descending at %q", b.Label)
		}
	}
	return nil
}

// Classify returns the label for a score. Total and non-overlapping: every
// score maps to exactly one label.
func (t *ThresholdTable) Classify(score float64) string {
	for _, b := range t.bands {
		if t.ascending {
			if score <= b.Cutoff {
				return b.Label
			}
		} else if score >= b.Cutoff {
			return b.Label
		}
	}
	return t.fallback
}

// Labels returns all labels in band order, ending with the fallback.
func (t *ThresholdTable) Labels() []string {
	labels := make([]string, 0, len(t.bands)+1)
	for _, b := range t.bands {
		labels = append(labels, b.Label)
	}
	return append(labels, t.fallback)
}
