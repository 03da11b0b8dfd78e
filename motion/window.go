package motion

import "sync"

// DefaultWindowSize is the number of samples a Window keeps when no explicit
// capacity is given. Twenty samples span roughly the last third of a second
// of touch input at common event rates.
const DefaultWindowSize = 20

// Window is a bounded FIFO over the most recent samples of one gesture.
// Appending beyond capacity evicts the oldest sample. A Window is safe for
// concurrent use: mutations take the write lock and Snapshot hands out a
// copy, so a reader never sees a half-applied append.
type Window struct {
	mu      sync.RWMutex
	samples []Sample
	size    int
}

// NewWindow returns an empty window that retains at most size samples. A
// non-positive size falls back to DefaultWindowSize.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &Window{samples: make([]Sample, 0, size), size: size}
}

// Append adds s as the newest sample, evicting the oldest one when the
// window is full. Timestamp monotonicity is the producer's concern; Append
// accepts whatever it is given.
func (w *Window) Append(s Sample) {
	w.mu.Lock()
	if len(w.samples) == w.size {
		copy(w.samples, w.samples[1:])
		w.samples[len(w.samples)-1] = s
	} else {
		w.samples = append(w.samples, s)
	}
	w.mu.Unlock()
}

// Clear drops all retained samples. The next gesture starts from an empty
// window.
func (w *Window) Clear() {
	w.mu.Lock()
	w.samples = w.samples[:0]
	w.mu.Unlock()
}

// Len reports how many samples are currently retained.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.samples)
}

// Size reports the capacity the window was created with.
func (w *Window) Size() int { return w.size }

// Last returns the most recent sample; ok is false for an empty window.
func (w *Window) Last() (s Sample, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.samples) == 0 {
		return Sample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

// Snapshot returns a copy of the retained samples, oldest first. The copy is
// safe to hold while the window keeps mutating.
func (w *Window) Snapshot() []Sample {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Sample, len(w.samples))
	copy(out, w.samples)
	return out
}
