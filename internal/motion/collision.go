package motion

import "github.com/iburimskiy/server-screen/internal/geom"

// Monitor tests the indicator's bounds against a fixed destination region.
// The zero Monitor never reports a collision.
type Monitor struct {
	Destination geom.Rect
	Width       int
	Height      int
}

// NewMonitor returns a monitor for an indicator of the given size.
func NewMonitor(dest geom.Rect, width, height int) Monitor {
	return Monitor{Destination: dest, Width: width, Height: height}
}

// Bounds returns the indicator rectangle anchored at p.
func (m Monitor) Bounds(p geom.Point) geom.Rect {
	return geom.RectAt(p, m.Width, m.Height)
}

// Collides reports whether an indicator at p overlaps the destination.
func (m Monitor) Collides(p geom.Point) bool {
	return m.Bounds(p).Intersects(m.Destination)
}

// Check runs after c has ticked. If the transfer is still moving and its
// indicator overlaps the destination, the transfer is finished early.
func (m Monitor) Check(c *Controller, step Step) Step {
	if step.Phase != Moving {
		return step
	}
	if !m.Collides(step.Position) {
		return step
	}
	return c.Finish(ReasonCollided)
}
