package geometry

// Segment represents a line segment between two endpoints.
type Segment struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// NewSegment creates a new Segment.
func NewSegment(a, b Point2D) Segment {
	return Segment{A: a, B: b}
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Distance returns the shortest distance from p to any point on the segment.
// The foot of the perpendicular is clamped to the segment's extent, so points
// that project beyond an endpoint measure their distance to that endpoint.
func (s Segment) Distance(p Point2D) float64 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return s.A.Distance(p)
	}

	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	foot := Point2D{X: s.A.X + t*dx, Y: s.A.Y + t*dy}
	return foot.Distance(p)
}
