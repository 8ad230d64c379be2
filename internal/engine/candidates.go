package engine

import (
	"sort"

	"github.com/piwi3910/cubepack/internal/model"
)

// Candidates returns the points worth trying for the next item: the origin,
// then for each placed item the points just past its extent on x, y and z.
// The list is stable-sorted by the given order, so ties keep generation order.
func Candidates(placed []model.Placement, order model.CandidateOrder) []model.Point {
	points := make([]model.Point, 0, 3*len(placed)+1)
	points = append(points, model.Point{})
	for _, p := range placed {
		points = append(points,
			model.Point{X: p.X + p.Width, Y: p.Y, Z: p.Z},
			model.Point{X: p.X, Y: p.Y + p.Height, Z: p.Z},
			model.Point{X: p.X, Y: p.Y, Z: p.Z + p.Depth},
		)
	}

	less := candidateLess(order)
	sort.SliceStable(points, func(i, j int) bool {
		return less(points[i], points[j])
	})
	return points
}

// candidateLess returns the comparison for the given order. Unknown orders
// fall back to distance from the origin.
func candidateLess(order model.CandidateOrder) func(a, b model.Point) bool {
	switch order {
	case model.CandidateYZX:
		return func(a, b model.Point) bool {
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			return a.X < b.X
		}
	case model.CandidateZYX:
		return func(a, b model.Point) bool {
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.X < b.X
		}
	default:
		return func(a, b model.Point) bool {
			return squaredDistance(a) < squaredDistance(b)
		}
	}
}

func squaredDistance(p model.Point) float64 {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}
