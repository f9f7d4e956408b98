package prefilter

// TrackedPrefilter wraps a Prefilter to implement the Prefilter interface
// while providing tracking capabilities.
//
// This allows using a tracked prefilter anywhere a regular Prefilter is
// expected.
type TrackedPrefilter struct {
	*Tracker
}

// WrapWithTracking creates a Prefilter that includes effectiveness tracking.
//
// The returned prefilter can be used anywhere a regular Prefilter is expected,
// but also supports tracking methods via type assertion:
//
//	pf := prefilter.WrapWithTracking(innerPf)
//	// Use as regular prefilter
//	pos := pf.Find(haystack, 0)
//	// Access tracking via type assertion
//	if tracked, ok := pf.(*prefilter.TrackedPrefilter); ok {
//	    tracked.ConfirmMatch()
//	    _, _, eff, _ := tracked.Stats()
//	}
func WrapWithTracking(inner Prefilter) Prefilter {
	if inner == nil {
		return nil
	}
	return &TrackedPrefilter{
		Tracker: NewTracker(inner),
	}
}

// Find implements Prefilter.Find with tracking.
func (tp *TrackedPrefilter) Find(haystack []byte, start int) int {
	return tp.Tracker.Find(haystack, start)
}

// IsComplete implements Prefilter.IsComplete.
func (tp *TrackedPrefilter) IsComplete() bool {
	return tp.Tracker.IsComplete()
}

// HeapBytes implements Prefilter.HeapBytes.
func (tp *TrackedPrefilter) HeapBytes() int {
	return tp.Tracker.HeapBytes()
}
