package animation

import "sync"

// ManualScheduler is a FrameScheduler whose frames run only when Pump is
// called. All methods are safe for concurrent use; callbacks run on the
// goroutine calling Pump.
type ManualScheduler struct {
	mu        sync.Mutex
	queue     frameQueue
	cancelled int
	ran       int
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{queue: newFrameQueue()}
}

// RequestFrame implements FrameScheduler.
func (s *ManualScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.push(cb)
}

// CancelFrame implements FrameScheduler.
func (s *ManualScheduler) CancelFrame(h FrameHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.cancel(h) {
		return false
	}
	s.cancelled++
	return true
}

// Pump runs every frame that was pending when it was called, in request
// order, and returns how many ran.
func (s *ManualScheduler) Pump() int {
	s.mu.Lock()
	batch := s.queue.batch()
	s.mu.Unlock()

	now := Now()
	n := 0
	for _, h := range batch {
		s.mu.Lock()
		cb, ok := s.queue.take(h)
		if ok {
			s.ran++
		}
		s.mu.Unlock()
		if ok {
			cb(now)
			n++
		}
	}
	return n
}

// PumpN calls Pump n times and returns the total number of frames run.
func (s *ManualScheduler) PumpN(n int) int {
	total := 0
	for range n {
		total += s.Pump()
	}
	return total
}

// Pending returns the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// Cancelled returns how many pending frames were cancelled.
func (s *ManualScheduler) Cancelled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Ran returns how many frames have run.
func (s *ManualScheduler) Ran() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ran
}
