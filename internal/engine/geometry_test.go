package engine

import (
	"testing"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/stretchr/testify/assert"
)

func cube(id string, s float64) model.Item {
	return model.Item{ID: id, Name: id, Width: s, Height: s, Depth: s}
}

func TestFits(t *testing.T) {
	bin := model.Bin{Width: 10, Height: 10, Depth: 10}

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"exact fit", Box{Width: 10, Height: 10, Depth: 10}, true},
		{"inside", Box{Origin: model.Point{X: 2, Y: 2, Z: 2}, Width: 5, Height: 5, Depth: 5}, true},
		{"touches far wall", Box{Origin: model.Point{X: 5}, Width: 5, Height: 1, Depth: 1}, true},
		{"exceeds x", Box{Origin: model.Point{X: 6}, Width: 5, Height: 1, Depth: 1}, false},
		{"exceeds y", Box{Origin: model.Point{Y: 6}, Width: 1, Height: 5, Depth: 1}, false},
		{"exceeds z", Box{Origin: model.Point{Z: 6}, Width: 1, Height: 1, Depth: 5}, false},
		{"negative origin", Box{Origin: model.Point{X: -1}, Width: 1, Height: 1, Depth: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.box, bin))
		})
	}
}

func TestFits_ZeroBin(t *testing.T) {
	assert.False(t, Fits(Box{Width: 1, Height: 1, Depth: 1}, model.Bin{}))
	assert.False(t, Fits(Box{Width: 1, Height: 1, Depth: 1}, model.Bin{Width: 10, Height: 0, Depth: 10}))
}

func TestIntersects(t *testing.T) {
	unit := func(x, y, z float64) Box {
		return Box{Origin: model.Point{X: x, Y: y, Z: z}, Width: 1, Height: 1, Depth: 1}
	}

	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"same position", unit(0, 0, 0), unit(0, 0, 0), true},
		{"partial overlap", unit(0, 0, 0), unit(0.5, 0.5, 0.5), true},
		{"face contact", unit(0, 0, 0), unit(1, 0, 0), false},
		{"edge contact", unit(0, 0, 0), unit(1, 1, 0), false},
		{"corner contact", unit(0, 0, 0), unit(1, 1, 1), false},
		{"separated on z", unit(0, 0, 0), unit(0, 0, 3), false},
		{"contained", Box{Width: 4, Height: 4, Depth: 4}, unit(1, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersects(tt.a, tt.b))
			assert.Equal(t, tt.want, Intersects(tt.b, tt.a), "intersection must be symmetric")
		})
	}
}

func TestEfficiency(t *testing.T) {
	bin := model.Bin{Width: 10, Height: 10, Depth: 10}
	placed := []model.Placement{
		model.NewPlacement(cube("a", 5), model.Point{}),
		model.NewPlacement(cube("b", 5), model.Point{X: 5}),
	}

	assert.InDelta(t, 25.0, Efficiency(bin, placed), 1e-9)
	assert.Equal(t, 0.0, Efficiency(bin, nil))
	assert.Equal(t, 0.0, Efficiency(model.Bin{}, placed))
}
