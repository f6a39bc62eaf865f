// Package surface provides drawable regions and the document that owns them.
//
// A [Surface] is a raster area backed by a gogpu/gg context (or, for
// headless use, any [graphics.Canvas]). Surfaces live in a [Document], which
// resolves them by identifier the way a hosting page resolves a canvas
// element by id.
package surface

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"

	"github.com/go-drift/gauge/pkg/graphics"
)

// Surface is a drawable region. It is either raster backed (NewSurface) or
// wraps a caller-provided canvas (NewHeadless).
type Surface struct {
	id string

	mu       sync.Mutex
	dc       *gg.Context
	canvas   graphics.Canvas
	visible  bool
	attached bool
	closed   bool
	owner    *Document
}

// NewSurface creates a raster surface of the given pixel size.
func NewSurface(id string, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface %q: invalid dimensions %dx%d", id, width, height)
	}
	dc := gg.NewContext(width, height)
	return &Surface{
		id:      id,
		dc:      dc,
		canvas:  graphics.NewRasterCanvas(dc),
		visible: true,
	}, nil
}

// NewHeadless wraps canvas in a surface with no raster storage.
// Resize forwards to canvas when it implements SetSize(graphics.Size).
func NewHeadless(id string, canvas graphics.Canvas) *Surface {
	return &Surface{
		id:      id,
		canvas:  canvas,
		visible: true,
	}
}

// ID returns the identifier the surface was created with.
func (s *Surface) ID() string {
	return s.id
}

// Canvas returns the canvas that draws into this surface.
func (s *Surface) Canvas() graphics.Canvas {
	return s.canvas
}

// Size returns the current size in pixels.
func (s *Surface) Size() graphics.Size {
	return s.canvas.Size()
}

type sizer interface {
	SetSize(graphics.Size)
}

// Resize changes the surface dimensions. Raster contents are discarded.
func (s *Surface) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("surface %q: resize after close", s.id)
	}
	if s.dc != nil {
		if err := s.dc.Resize(width, height); err != nil {
			return fmt.Errorf("surface %q: %w", s.id, err)
		}
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface %q: invalid dimensions %dx%d", s.id, width, height)
	}
	if r, ok := s.canvas.(sizer); ok {
		r.SetSize(graphics.Size{Width: float64(width), Height: float64(height)})
	}
	return nil
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	s.canvas.Clear(graphics.ColorTransparent)
}

// SetVisible toggles whether the surface is presented. The surface stays in
// its document either way.
func (s *Surface) SetVisible(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
}

// Visible reports whether the surface is presented.
func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Attached reports whether the surface is currently held by a document.
func (s *Surface) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// Detach removes the surface from its document. Detaching an unattached
// surface does nothing.
func (s *Surface) Detach() {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner != nil {
		owner.remove(s)
	}
}

func (s *Surface) setOwner(d *Document) {
	s.mu.Lock()
	s.owner = d
	s.attached = d != nil
	s.mu.Unlock()
}

// Image returns a snapshot of the raster contents, or nil for headless surfaces.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// EncodePNG writes the raster contents as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return fmt.Errorf("surface %q: headless surface has no raster", s.id)
	}
	return s.dc.EncodePNG(w)
}

// SavePNG writes the raster contents to a PNG file.
func (s *Surface) SavePNG(path string) error {
	if s.dc == nil {
		return fmt.Errorf("surface %q: headless surface has no raster", s.id)
	}
	return s.dc.SavePNG(path)
}

// Close releases the raster. Close is idempotent.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.dc != nil {
		return s.dc.Close()
	}
	return nil
}
