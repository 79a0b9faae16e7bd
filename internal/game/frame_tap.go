package game

import "time"

// frameTap records the last N frame durations into a ring buffer so the
// status line can show a smoothed frame rate.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	count     int
}

func newFrameTap(ringSize int) *frameTap {
	return &frameTap{
		buffer: make([]time.Duration, ringSize),
	}
}

func (t *frameTap) record(d time.Duration) {
	t.buffer[t.nextIndex] = d
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.count < len(t.buffer) {
		t.count++
	}
}

// snapshot returns up to the last n durations, oldest first.
func (t *frameTap) snapshot(n int) []time.Duration {
	if n > t.count {
		n = t.count
	}
	out := make([]time.Duration, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// fps averages over everything recorded so far.
func (t *frameTap) fps() float64 {
	var total time.Duration
	for _, d := range t.snapshot(t.count) {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(t.count) / total.Seconds()
}
