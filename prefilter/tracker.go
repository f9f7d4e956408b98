package prefilter

// Tracker wraps a Prefilter with effectiveness tracking.
//
// The tracker monitors the ratio of confirmed matches to candidates found.
// When effectiveness drops below a threshold (too many false positives),
// the prefilter is automatically disabled to prevent catastrophic slowdown.
//
// This implements the rust-regex pattern where prefilters can be "retired"
// when they become ineffective for certain inputs.
//
// Algorithm:
//  1. Track candidates (prefilter finds) and confirms (actual matches)
//  2. Every N candidates, check effectiveness ratio
//  3. If ratio < threshold, disable prefilter
//  4. Once disabled, never re-enable (for this search)
//
// Example usage:
//
//	pf := prefilter.NewBuilder(prefixes, nil).Build()
//	tracker := prefilter.NewTracker(pf)
//	for {
//	    if !tracker.IsActive() {
//	        // Prefilter disabled, use full scan
//	        break
//	    }
//	    pos := tracker.Find(haystack, start)
//	    if pos == -1 {
//	        break
//	    }
//	    if fullRegexMatches(haystack, pos) {
//	        tracker.ConfirmMatch()
//	        return pos
//	    }
//	    start = pos + 1
//	}
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in candidates).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms/candidates.
	// If efficiency drops below this, prefilter is disabled.
	// Default: 0.1 (10%)
	MinEfficiency float64

	// WarmupPeriod is the minimum number of candidates before checking effectiveness.
	// This prevents premature disabling on small samples.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
//
// Default values are tuned based on rust-regex heuristics:
//   - CheckInterval: 64 (check frequently but not every candidate)
//   - MinEfficiency: 0.1 (10% - disable if >90% false positives)
//   - WarmupPeriod: 128 (need enough samples for statistical significance)
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a new tracker for the given prefilter with default config.
//
// Returns nil if the inner prefilter is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a new tracker with custom configuration.
//
// Returns nil if the inner prefilter is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}

	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position, or -1 if none found or disabled.
//
// Unlike the inner prefilter, this may return -1 even when candidates exist
// if the prefilter has been disabled due to low effectiveness.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}

	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch should be called when a candidate actually matches.
//
// This increments the confirm counter, improving the effectiveness ratio.
// Always call this after verifying a candidate is a real match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive returns true if the prefilter is still being used.
//
// When false, the caller should fall back to full regex search instead of
// using the prefilter.
func (t *Tracker) IsActive() bool {
	return t.active
}

// IsComplete delegates to the inner prefilter's IsComplete.
func (t *Tracker) IsComplete() bool {
	return t.inner.IsComplete()
}

// HeapBytes returns the memory used by the inner prefilter.
func (t *Tracker) HeapBytes() int {
	return t.inner.HeapBytes()
}

// Stats returns the current tracking statistics: (candidates, confirms,
// efficiency, active).
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	active = t.active
	return
}

// Reset clears statistics and re-enables the prefilter, for reuse across
// multiple searches.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the underlying prefilter, for accessing type-specific
// methods or bypassing tracking.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

// checkEffectiveness evaluates whether to disable the prefilter. Called
// after each candidate is found, but only performs the actual ratio check
// at configured intervals to keep the per-candidate overhead small.
func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}

	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	efficiency := float64(t.confirms) / float64(t.candidates)
	if efficiency < t.minEfficiency {
		t.active = false
	}
}
