package animation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/gauge/pkg/errors"
)

// DefaultFrameInterval is roughly one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is a single-goroutine event loop. Posted tasks and frame callbacks all
// run on the goroutine executing Run, one at a time, so state touched only
// from loop callbacks needs no locking.
//
// Post, Do, RequestFrame and CancelFrame are safe to call from any goroutine.
type Loop struct {
	interval time.Duration

	// OnPanic, when set, runs on the loop goroutine after a panicking task or
	// frame has been reported. Set it before Run.
	OnPanic func(r any)

	mu      sync.Mutex
	tasks   []func()
	queue   frameQueue
	running bool
	wake    chan struct{}
}

// NewLoop returns a loop firing frames every interval. A non-positive
// interval uses DefaultFrameInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		interval: interval,
		queue:    newFrameQueue(),
		wake:     make(chan struct{}, 1),
	}
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post queues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop goroutine and waits for it to finish or for ctx to
// end. It must not be called from the loop goroutine itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestFrame implements FrameScheduler.
func (l *Loop) RequestFrame(cb FrameCallback) FrameHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.push(cb)
}

// CancelFrame implements FrameScheduler.
func (l *Loop) CancelFrame(h FrameHandle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.cancel(h)
}

// Run processes tasks and frames until ctx is done, then returns ctx.Err().
// Only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return fmt.Errorf("animation: loop already running")
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.runTasks()
		case <-ticker.C:
			l.runTasks()
			l.runFrames()
		}
	}
}

func (l *Loop) runTasks() {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		l.safeCall(fn)
	}
}

func (l *Loop) runFrames() {
	l.mu.Lock()
	batch := l.queue.batch()
	l.mu.Unlock()

	now := Now()
	for _, h := range batch {
		l.mu.Lock()
		cb, ok := l.queue.take(h)
		l.mu.Unlock()
		if ok {
			l.safeCall(func() { cb(now) })
		}
	}
}

// safeCall keeps the loop alive when a callback panics.
func (l *Loop) safeCall(fn func()) {
	defer errors.RecoverWithCallback("animation.Loop", l.OnPanic)
	fn()
}
