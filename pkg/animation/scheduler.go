// Package animation schedules animation frames and drives the gauge's
// rotation.
//
// # Core Components
//
//   - [FrameScheduler]: requests and cancels one-shot frame callbacks, the
//     way a browser's requestAnimationFrame does.
//
//   - [ManualScheduler]: runs frames only when pumped. Used by tests and by
//     callers that render a fixed number of frames.
//
//   - [Loop]: a single-goroutine event loop that fires frames on an interval
//     and serializes every callback with posted tasks.
//
//   - [Spinner]: the Idle/Spinning state machine that advances a rotation
//     angle by a fixed step on each frame.
//
// # Basic Usage
//
//	loop := animation.NewLoop(16 * time.Millisecond)
//	go loop.Run(ctx)
//
//	spin := animation.NewSpinner(loop, func(angle float64) {
//	    widget.Render(angle)
//	}, func() {
//	    widget.Render(0)
//	})
//	loop.Post(func() { spin.Start() })
package animation

import "time"

// FrameHandle identifies a pending frame request. The zero value means no
// frame is pending.
type FrameHandle uint64

// FrameCallback runs once for a requested frame with the frame timestamp.
type FrameCallback func(now time.Time)

// FrameScheduler requests and cancels frame callbacks.
type FrameScheduler interface {
	// RequestFrame schedules cb for the next frame and returns its handle.
	RequestFrame(cb FrameCallback) FrameHandle

	// CancelFrame removes a pending frame. It returns false if the frame
	// already ran, was already cancelled, or never existed.
	CancelFrame(h FrameHandle) bool
}

// frameQueue holds pending frames in request order.
type frameQueue struct {
	next   FrameHandle
	frames map[FrameHandle]FrameCallback
	order  []FrameHandle
}

func newFrameQueue() frameQueue {
	return frameQueue{frames: make(map[FrameHandle]FrameCallback)}
}

func (q *frameQueue) push(cb FrameCallback) FrameHandle {
	q.next++
	q.frames[q.next] = cb
	q.order = append(q.order, q.next)
	return q.next
}

func (q *frameQueue) cancel(h FrameHandle) bool {
	if _, ok := q.frames[h]; !ok {
		return false
	}
	delete(q.frames, h)
	return true
}

// batch detaches the handles pending right now. Frames requested while the
// batch runs belong to the next one.
func (q *frameQueue) batch() []FrameHandle {
	b := q.order
	q.order = nil
	return b
}

// take removes and returns the callback for h if it is still pending.
func (q *frameQueue) take(h FrameHandle) (FrameCallback, bool) {
	cb, ok := q.frames[h]
	if ok {
		delete(q.frames, h)
	}
	return cb, ok
}

func (q *frameQueue) len() int {
	return len(q.frames)
}
