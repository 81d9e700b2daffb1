package calculator

// rollingWindow keeps the last period values in a preallocated circular buffer.
type rollingWindow struct {
	buf   []float64
	idx   int // next write position
	count int
}

func newRollingWindow(period int) *rollingWindow {
	return &rollingWindow{buf: make([]float64, period)}
}

func (w *rollingWindow) Push(v float64) {
	w.buf[w.idx] = v
	w.idx = (w.idx + 1) % len(w.buf)
	w.count++
}

// Full reports whether period values have been pushed.
func (w *rollingWindow) Full() bool { return w.count >= len(w.buf) }

// Mean sums the buffer oldest to newest at read time, so equal windows
// produce bit-identical means. Returns false until the window is full.
func (w *rollingWindow) Mean() (float64, bool) {
	if !w.Full() {
		return 0, false
	}
	sum := 0.0
	n := len(w.buf)
	for i := 0; i < n; i++ {
		sum += w.buf[(w.idx+i)%n]
	}
	return sum / float64(n), true
}

// emaState is an exponentially weighted mean seeded with the first observation.
type emaState struct {
	alpha  float64
	value  float64
	seeded bool
}

func newEMAState(span int) *emaState {
	return &emaState{alpha: 2.0 / float64(span+1)}
}

// Push folds v into the average and returns the updated value.
func (e *emaState) Push(v float64) float64 {
	if !e.seeded {
		e.value = v
		e.seeded = true
		return e.value
	}
	// Same as alpha*v + (1-alpha)*value, but exact when v equals the average.
	e.value += e.alpha * (v - e.value)
	return e.value
}
