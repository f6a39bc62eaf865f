// Package viewport tracks the host viewport size and notifies subscribers
// when it changes.
package viewport

import (
	"sync"

	"github.com/go-drift/gauge/pkg/graphics"
)

// Viewport is the visible area hosting one or more surfaces.
type Viewport struct {
	mu       sync.Mutex
	size     graphics.Size
	nextID   int
	handlers map[int]func(graphics.Size)
	order    []int
}

// New returns a viewport of the given size.
func New(size graphics.Size) *Viewport {
	return &Viewport{
		size:     size,
		handlers: make(map[int]func(graphics.Size)),
	}
}

// Size returns the current viewport size.
func (v *Viewport) Size() graphics.Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// Width returns the current viewport width.
func (v *Viewport) Width() float64 {
	return v.Size().Width
}

// SetSize updates the size and notifies subscribers in subscription order.
// Setting the current size again notifies nobody.
func (v *Viewport) SetSize(size graphics.Size) {
	v.mu.Lock()
	if size == v.size {
		v.mu.Unlock()
		return
	}
	v.size = size
	handlers := make([]func(graphics.Size), 0, len(v.order))
	for _, id := range v.order {
		handlers = append(handlers, v.handlers[id])
	}
	v.mu.Unlock()

	for _, fn := range handlers {
		fn(size)
	}
}

// Subscribe registers fn for resize notifications.
func (v *Viewport) Subscribe(fn func(graphics.Size)) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.handlers[id] = fn
	v.order = append(v.order, id)
	return &Subscription{viewport: v, id: id}
}

// Listeners returns the number of active subscriptions.
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.handlers)
}

func (v *Viewport) unsubscribe(id int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.handlers[id]; !ok {
		return false
	}
	delete(v.handlers, id)
	for i, o := range v.order {
		if o == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	return true
}

// Subscription is a registered resize handler.
type Subscription struct {
	viewport *Viewport
	id       int
	once     sync.Once
}

// Cancel stops delivery to the handler. Only the first call releases the
// subscription and returns true.
func (s *Subscription) Cancel() bool {
	released := false
	s.once.Do(func() {
		released = s.viewport.unsubscribe(s.id)
	})
	return released
}
