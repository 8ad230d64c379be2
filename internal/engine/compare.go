package engine

import (
	"fmt"

	"github.com/piwi3910/cubepack/internal/model"
)

// ComparisonScenario defines a named packer policy to compare.
type ComparisonScenario struct {
	Name     string             `json:"name"`
	Settings model.PackSettings `json:"settings"`
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario  `json:"scenario"`
	Result        model.PackingResult `json:"result"`
	Summary       model.Summary       `json:"summary"`
	BinsUsed      int                 `json:"bins_used"`
	PackedCount   int                 `json:"packed_count"`
	UnpackedCount int                 `json:"unpacked_count"`
}

// CompareScenarios packs the same input once per scenario and returns the
// results in scenario order. The first invalid scenario aborts the run.
func CompareScenarios(scenarios []ComparisonScenario, bins []model.Bin, items []model.Item) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).Pack(bins, items)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		summary := model.Summarize(result)
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Summary:       summary,
			BinsUsed:      summary.BinsUsed,
			PackedCount:   summary.PackedCount,
			UnpackedCount: summary.UnpackedCount,
		})
	}

	return results, nil
}

// Best returns the index of the result that packed the most items, using
// overall efficiency and then fewer bins as tie breakers. It returns -1 for
// an empty slice.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 || better(r, results[best]) {
			best = i
		}
	}
	return best
}

func better(a, b ComparisonResult) bool {
	if a.PackedCount != b.PackedCount {
		return a.PackedCount > b.PackedCount
	}
	if a.Summary.OverallEfficiency != b.Summary.OverallEfficiency {
		return a.Summary.OverallEfficiency > b.Summary.OverallEfficiency
	}
	return a.BinsUsed < b.BinsUsed
}

// BuildDefaultScenarios returns the base settings first, followed by every
// other combination of candidate order and item order.
func BuildDefaultScenarios(base model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, co := range model.CandidateOrders {
		for _, io := range model.ItemOrders {
			s := model.PackSettings{CandidateOrder: co, ItemOrder: io}
			if s == base {
				continue
			}
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("%s / %s", co, io),
				Settings: s,
			})
		}
	}

	return scenarios
}
