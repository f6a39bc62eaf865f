package surface

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-drift/gauge/pkg/errors"
)

// Resolver looks up a drawable surface by identifier.
type Resolver interface {
	Resolve(id string) (*Surface, error)
}

// Document holds surfaces keyed by identifier.
type Document struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{surfaces: make(map[string]*Surface)}
}

// Create makes a raster surface and attaches it under its id.
func (d *Document) Create(id string, width, height int) (*Surface, error) {
	s, err := NewSurface(id, width, height)
	if err != nil {
		return nil, err
	}
	if err := d.Add(s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Add attaches s under its id. Ids are unique within a document.
func (d *Document) Add(s *Surface) error {
	if s.ID() == "" {
		return fmt.Errorf("surface id must not be empty")
	}
	d.mu.Lock()
	if _, exists := d.surfaces[s.ID()]; exists {
		d.mu.Unlock()
		return fmt.Errorf("surface %q already exists", s.ID())
	}
	d.surfaces[s.ID()] = s
	d.mu.Unlock()
	s.setOwner(d)
	return nil
}

// Resolve implements Resolver. Unknown ids return a *errors.NotFoundError.
func (d *Document) Resolve(id string) (*Surface, error) {
	d.mu.RLock()
	s, ok := d.surfaces[id]
	d.mu.RUnlock()
	if !ok {
		return nil, &errors.NotFoundError{ID: id}
	}
	return s, nil
}

// Remove detaches the surface with the given id. It returns false if no such
// surface is attached.
func (d *Document) Remove(id string) bool {
	d.mu.RLock()
	s, ok := d.surfaces[id]
	d.mu.RUnlock()
	if !ok {
		return false
	}
	return d.remove(s)
}

func (d *Document) remove(s *Surface) bool {
	d.mu.Lock()
	cur, ok := d.surfaces[s.ID()]
	if !ok || cur != s {
		d.mu.Unlock()
		return false
	}
	delete(d.surfaces, s.ID())
	d.mu.Unlock()
	s.setOwner(nil)
	return true
}

// IDs returns the attached surface ids in sorted order.
func (d *Document) IDs() []string {
	d.mu.RLock()
	ids := make([]string, 0, len(d.surfaces))
	for id := range d.surfaces {
		ids = append(ids, id)
	}
	d.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
