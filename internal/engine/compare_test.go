package engine

import (
	"testing"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()

	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, len(model.CandidateOrders)*len(model.ItemOrders))
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)

	seen := map[model.PackSettings]bool{}
	for _, s := range scenarios {
		assert.False(t, seen[s.Settings], "duplicate scenario %s", s.Name)
		seen[s.Settings] = true
	}
}

func TestCompareScenarios(t *testing.T) {
	items := []model.Item{cube("a", 5), cube("b", 5), cube("c", 6)}
	bins := []model.Bin{bin(10)}
	scenarios := []ComparisonScenario{
		{Name: "volume", Settings: model.DefaultSettings()},
		{Name: "input", Settings: model.PackSettings{CandidateOrder: model.CandidateDistance, ItemOrder: model.ItemOrderInput}},
	}

	results, err := CompareScenarios(scenarios, bins, items)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "volume", results[0].Scenario.Name)
	assert.Equal(t, 1, results[0].PackedCount)
	assert.Equal(t, 2, results[0].UnpackedCount)

	assert.Equal(t, "input", results[1].Scenario.Name)
	assert.Equal(t, 2, results[1].PackedCount)
	assert.Equal(t, 1, results[1].UnpackedCount)

	assert.Equal(t, 1, Best(results))
}

func TestCompareScenarios_InvalidScenario(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "broken", Settings: model.PackSettings{CandidateOrder: "nope", ItemOrder: model.ItemOrderVolume}},
	}

	_, err := CompareScenarios(scenarios, []model.Bin{bin(1)}, []model.Item{cube("a", 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
	assert.Contains(t, err.Error(), "broken")
}

func TestBest_Empty(t *testing.T) {
	assert.Equal(t, -1, Best(nil))
}
