package geometry

import "math"

// Circle represents a circle by its center point and radius.
type Circle struct {
	Center Point2D `json:"center"`
	Radius float64 `json:"radius"`
}

// NewCircle creates a new Circle.
func NewCircle(x, y, radius float64) Circle {
	return Circle{Center: Point2D{X: x, Y: y}, Radius: radius}
}

// Contains returns true if the point is inside the circle or on its rim.
func (c Circle) Contains(p Point2D) bool {
	return c.Center.DistanceSq(p) <= c.Radius*c.Radius
}

// Area returns the area of the circle.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Translate returns a copy of the circle shifted by (dx, dy).
func (c Circle) Translate(dx, dy float64) Circle {
	return Circle{
		Center: Point2D{X: c.Center.X + dx, Y: c.Center.Y + dy},
		Radius: c.Radius,
	}
}

// Overlaps returns true if the interiors of the two circles intersect.
// Circles that merely touch do not overlap.
func (c Circle) Overlaps(other Circle) bool {
	sum := c.Radius + other.Radius
	return c.Center.DistanceSq(other.Center) < sum*sum
}
