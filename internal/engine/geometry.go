package engine

import "github.com/piwi3910/cubepack/internal/model"

// Box is an axis-aligned box given by its minimum corner and extents.
type Box struct {
	Origin model.Point
	Width  float64
	Height float64
	Depth  float64
}

// BoxAt returns item translated so its minimum corner sits at p.
func BoxAt(item model.Item, p model.Point) Box {
	return Box{Origin: p, Width: item.Width, Height: item.Height, Depth: item.Depth}
}

// PlacedBox returns the box occupied by a placement.
func PlacedBox(p model.Placement) Box {
	return BoxAt(p.Item, p.Origin())
}

// Fits reports whether box lies inside bin on all three axes. A bin with
// any zero dimension fits nothing.
func Fits(box Box, bin model.Bin) bool {
	if bin.Width <= 0 || bin.Height <= 0 || bin.Depth <= 0 {
		return false
	}
	if box.Origin.X < 0 || box.Origin.Y < 0 || box.Origin.Z < 0 {
		return false
	}
	return box.Origin.X+box.Width <= bin.Width &&
		box.Origin.Y+box.Height <= bin.Height &&
		box.Origin.Z+box.Depth <= bin.Depth
}

// Intersects reports whether a and b share volume. Boxes that only touch
// along a face, edge or corner do not intersect.
func Intersects(a, b Box) bool {
	return a.Origin.X < b.Origin.X+b.Width && b.Origin.X < a.Origin.X+a.Width &&
		a.Origin.Y < b.Origin.Y+b.Height && b.Origin.Y < a.Origin.Y+a.Height &&
		a.Origin.Z < b.Origin.Z+b.Depth && b.Origin.Z < a.Origin.Z+a.Depth
}
