package engine

import "github.com/piwi3910/cubepack/internal/model"

// Place finds the first candidate point at which item fits inside bin
// without intersecting any placed item. It returns false when no candidate
// works; that means "does not fit in this bin", not an error.
//
// Each call is O(k^2) in the number of placed items: about 3k+1 candidates,
// each checked against k boxes.
func Place(item model.Item, bin model.Bin, placed []model.Placement, order model.CandidateOrder) (model.Point, bool) {
	for _, p := range Candidates(placed, order) {
		box := BoxAt(item, p)
		if !Fits(box, bin) {
			continue
		}
		if collides(box, placed) {
			continue
		}
		return p, true
	}
	return model.Point{}, false
}

func collides(box Box, placed []model.Placement) bool {
	for _, other := range placed {
		if Intersects(box, PlacedBox(other)) {
			return true
		}
	}
	return false
}
