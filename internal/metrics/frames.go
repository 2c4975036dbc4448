package metrics

import (
	"sync"
	"time"
)

// Metric is a named running value.
type Metric interface {
	Name() string
	Value() float64
	Reset()
}

// FrameRate estimates frames per second over a sliding window of frame
// timestamps.
type FrameRate struct {
	mu     sync.Mutex
	name   string
	window time.Duration
	stamps []time.Time
	total  int
}

func NewFrameRate(window time.Duration) *FrameRate {
	if window <= 0 {
		window = time.Second
	}
	return &FrameRate{name: "fps", window: window}
}

func (f *FrameRate) Name() string { return f.name }

// Observe records a frame drawn at t. Timestamps must not go backwards.
func (f *FrameRate) Observe(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamps = append(f.stamps, t)
	f.total++
	cutoff := t.Add(-f.window)
	i := 0
	for i < len(f.stamps) && f.stamps[i].Before(cutoff) {
		i++
	}
	f.stamps = f.stamps[i:]
}

func (f *FrameRate) Value() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stamps) < 2 {
		return 0
	}
	span := f.stamps[len(f.stamps)-1].Sub(f.stamps[0])
	if span <= 0 {
		return 0
	}
	return float64(len(f.stamps)-1) / span.Seconds()
}

// Total is the number of frames observed since the last reset.
func (f *FrameRate) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *FrameRate) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamps = f.stamps[:0]
	f.total = 0
}

// Counter counts events such as scene rebuilds.
type Counter struct {
	mu    sync.Mutex
	name  string
	count int
}

func NewCounter(name string) *Counter { return &Counter{name: name} }

func (c *Counter) Name() string { return c.name }

func (c *Counter) Add(n int) {
	c.mu.Lock()
	c.count += n
	c.mu.Unlock()
}

func (c *Counter) Inc() { c.Add(1) }

func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.count)
}

func (c *Counter) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}
