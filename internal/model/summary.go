package model

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics for a packing result.
type Summary struct {
	TotalItems        int     `json:"total_items"`
	PackedCount       int     `json:"packed_count"`
	UnpackedCount     int     `json:"unpacked_count"`
	BinsAttempted     int     `json:"bins_attempted"`
	BinsUsed          int     `json:"bins_used"`
	PackedVolume      float64 `json:"packed_volume"`
	MeanEfficiency    float64 `json:"mean_efficiency"`
	StdDevEfficiency  float64 `json:"stddev_efficiency"`
	OverallEfficiency float64 `json:"overall_efficiency"`
}

// Summarize computes aggregate statistics over every attempted bin.
// OverallEfficiency is placed volume over the volume of attempted bins.
func Summarize(r PackingResult) Summary {
	s := Summary{
		PackedCount:   r.PackedCount(),
		UnpackedCount: len(r.UnpackedItems),
		BinsAttempted: len(r.PackedBins),
	}
	s.TotalItems = s.PackedCount + s.UnpackedCount

	if len(r.PackedBins) == 0 {
		return s
	}

	effs := make([]float64, len(r.PackedBins))
	used := make([]float64, len(r.PackedBins))
	capacity := make([]float64, len(r.PackedBins))
	for i, b := range r.PackedBins {
		effs[i] = b.Efficiency
		used[i] = b.UsedVolume()
		capacity[i] = b.Bin.Volume()
		if len(b.Items) > 0 {
			s.BinsUsed++
		}
	}

	s.PackedVolume = floats.Sum(used)
	if len(effs) > 1 {
		s.MeanEfficiency, s.StdDevEfficiency = stat.MeanStdDev(effs, nil)
	} else {
		s.MeanEfficiency = effs[0]
	}
	if total := floats.Sum(capacity); total > 0 {
		s.OverallEfficiency = s.PackedVolume / total * 100.0
	}
	return s
}
