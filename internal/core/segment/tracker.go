package segment

import "sync"

// LongestTracker keeps, per speaker, the longest segment observed so far.
// It is session-local state: the segmentation path is the only writer and
// resolution tasks read concurrently, hence the RWMutex. Deleting the
// tracked segment elsewhere does not trigger a recompute here
type LongestTracker struct {
	mu   sync.RWMutex
	best map[int]Segment
}

// NewLongestTracker returns an empty tracker
func NewLongestTracker() *LongestTracker {
	return &LongestTracker{best: make(map[int]Segment)}
}

// Observe replaces the tracked segment for its speaker when strictly longer
func (t *LongestTracker) Observe(s Segment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.best[s.Speaker]
	if !ok || s.Duration() > cur.Duration() {
		t.best[s.Speaker] = s
	}
}

// Longest returns the tracked segment for a speaker, if any
func (t *LongestTracker) Longest(speaker int) (Segment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.best[speaker]
	return s, ok
}

// Speakers returns the speaker indices with a tracked segment
func (t *LongestTracker) Speakers() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, len(t.best))
	for k := range t.best {
		out = append(out, k)
	}
	return out
}
