package viewer

import (
	"context"
	"sync"
	"time"
)

// Loop calls a frame function on every tick until stopped.
type Loop struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartLoop starts redrawing every interval. The loop ends when ctx is
// cancelled or Stop is called.
func StartLoop(ctx context.Context, interval time.Duration, frame func(time.Time)) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, interval, frame)
	return l
}

func (l *Loop) run(ctx context.Context, interval time.Duration, frame func(time.Time)) {
	defer close(l.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			frame(now)
		}
	}
}

// Stop cancels the loop and waits for the running frame, if any, to finish.
// It is safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(l.cancel)
	<-l.done
}

// Done is closed once the loop has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }
