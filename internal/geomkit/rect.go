package geomkit

import "math"

// Rect is an axis-aligned rectangle, Location at the lower-left corner.
type Rect struct {
	Location Vector2D
	Size     Vector2D // Size.X = width, Size.Y = height; both >= 0 (0 on a degenerate axis)
}

// NewRect builds the tight axis-aligned bound over the given points. Passing
// no points returns the zero Rect.
func NewRect(points ...Vector2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Location: Vector2D{X: minX, Y: minY}, Size: Vector2D{X: maxX - minX, Y: maxY - minY}}
}

// Max returns the upper-right corner.
func (r Rect) Max() Vector2D {
	return Vector2D{X: r.Location.X + r.Size.X, Y: r.Location.Y + r.Size.Y}
}

// ContainsPoint reports whether p lies within the closed rectangle.
func (r Rect) ContainsPoint(p Vector2D) bool {
	max := r.Max()
	return p.X >= r.Location.X && p.X <= max.X && p.Y >= r.Location.Y && p.Y <= max.Y
}

// edges returns the four boundary segments in a fixed order.
func (r Rect) edges() [4]LineSegment {
	bl := r.Location
	br := Vector2D{X: r.Location.X + r.Size.X, Y: r.Location.Y}
	tr := r.Max()
	tl := Vector2D{X: r.Location.X, Y: r.Location.Y + r.Size.Y}
	return [4]LineSegment{
		NewLineSegment(bl, br),
		NewLineSegment(br, tr),
		NewLineSegment(tr, tl),
		NewLineSegment(tl, bl),
	}
}

// ContainsSegment reports whether both endpoints of s lie inside r, or s
// crosses one of r's edges. This is a fast pre-filter: it may be liberal for
// segments whose expanded bounding box cannot be excluded, but never
// excludes a segment that genuinely overlaps r.
func (r Rect) ContainsSegment(s LineSegment) bool {
	if r.ContainsPoint(s.Start) || r.ContainsPoint(s.End) {
		return true
	}
	for _, e := range r.edges() {
		if _, ok := s.Intersect(e); ok {
			return true
		}
	}
	return false
}

// Expanded returns r grown by margin on every side.
func (r Rect) Expanded(margin float64) Rect {
	return Rect{
		Location: Vector2D{X: r.Location.X - margin, Y: r.Location.Y - margin},
		Size:     Vector2D{X: r.Size.X + 2*margin, Y: r.Size.Y + 2*margin},
	}
}
