package engine

import "github.com/piwi3910/cubepack/internal/model"

// Efficiency returns the percentage of bin volume occupied by placed items,
// at full precision. A zero-volume bin has efficiency 0.
func Efficiency(bin model.Bin, placed []model.Placement) float64 {
	vol := bin.Volume()
	if vol <= 0 {
		return 0
	}
	var used float64
	for _, p := range placed {
		used += p.Volume()
	}
	return used / vol * 100.0
}
