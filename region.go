package interactor

import (
	"github.com/gogpu/gg"
)

// Region is a hit-testable, drawable area owned by a Machine.
//
// Regions are compared by identity: two regions are the same only if they are
// the same instance. Implementations must therefore be comparable, which in
// practice means pointer receivers. A non-comparable region, such as a slice
// or func type, makes the translator panic on the first event that hits it.
type Region interface {
	// Offset returns the region's position in the surface's local space.
	Offset() (x, y float64)

	// ContainsLocalPoint reports whether (x, y), relative to Offset, is
	// inside the region's bounding box.
	ContainsLocalPoint(x, y float64) bool

	// Draw renders the region with dc already translated to Offset.
	// When debug is set the region also outlines its bounding box.
	Draw(dc *gg.Context, debug bool) error
}

// Box is an axis-aligned rectangular Region.
type Box struct {
	Name          string
	X, Y          float64
	Width, Height float64
	Fill          gg.RGBA
}

var _ Region = (*Box)(nil)

// NewBox creates a box at (x, y) with the given size and fill color.
func NewBox(name string, x, y, width, height float64, fill gg.RGBA) *Box {
	return &Box{Name: name, X: x, Y: y, Width: width, Height: height, Fill: fill}
}

// Offset returns the box position.
func (b *Box) Offset() (x, y float64) {
	return b.X, b.Y
}

// MoveTo repositions the box. Moving a region does not by itself produce
// enter or exit events; those come only from the next raw event.
func (b *Box) MoveTo(x, y float64) {
	b.X, b.Y = x, y
}

// ContainsLocalPoint tests the half-open box [0, Width) x [0, Height).
func (b *Box) ContainsLocalPoint(x, y float64) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// RegionName returns the box name.
func (b *Box) RegionName() string {
	return b.Name
}

// Draw fills the box and, in debug mode, strokes its bounds.
func (b *Box) Draw(dc *gg.Context, debug bool) error {
	dc.SetColor(b.Fill.Color())
	dc.DrawRectangle(0, 0, b.Width, b.Height)
	if err := dc.Fill(); err != nil {
		return err
	}
	if !debug {
		return nil
	}
	dc.SetRGB(1, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, b.Width-1, b.Height-1)
	return dc.Stroke()
}
