package model

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(PackingResult{UnpackedItems: []Item{{ID: "a"}}})
	if s.TotalItems != 1 || s.UnpackedCount != 1 || s.BinsAttempted != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.MeanEfficiency != 0 || s.OverallEfficiency != 0 {
		t.Errorf("expected zero efficiencies, got %+v", s)
	}
}

func TestSummarizeSingleBin(t *testing.T) {
	r := PackingResult{PackedBins: []PackedBin{{
		Bin:        Bin{Width: 10, Height: 10, Depth: 10},
		Items:      []Placement{{Item: Item{Width: 5, Height: 10, Depth: 10}}},
		Efficiency: 50,
	}}}
	s := Summarize(r)
	if s.MeanEfficiency != 50 {
		t.Errorf("expected mean 50, got %f", s.MeanEfficiency)
	}
	if s.StdDevEfficiency != 0 {
		t.Errorf("expected stddev 0 for one bin, got %f", s.StdDevEfficiency)
	}
	if s.OverallEfficiency != 50 {
		t.Errorf("expected overall 50, got %f", s.OverallEfficiency)
	}
	if s.BinsUsed != 1 {
		t.Errorf("expected 1 bin used, got %d", s.BinsUsed)
	}
}

func TestSummarizeMultipleBins(t *testing.T) {
	r := PackingResult{PackedBins: []PackedBin{
		{
			Bin:        Bin{Width: 10, Height: 10, Depth: 10},
			Items:      []Placement{{Item: Item{Width: 10, Height: 10, Depth: 10}}},
			Efficiency: 100,
		},
		{
			Bin:        Bin{Width: 10, Height: 10, Depth: 10},
			Efficiency: 0,
		},
	}}
	s := Summarize(r)
	if s.MeanEfficiency != 50 {
		t.Errorf("expected mean 50, got %f", s.MeanEfficiency)
	}
	// sample stddev of {100, 0}
	if math.Abs(s.StdDevEfficiency-math.Sqrt(5000)) > 1e-9 {
		t.Errorf("unexpected stddev %f", s.StdDevEfficiency)
	}
	if s.BinsUsed != 1 || s.BinsAttempted != 2 {
		t.Errorf("expected 1 used of 2 attempted, got %d of %d", s.BinsUsed, s.BinsAttempted)
	}
	if s.OverallEfficiency != 50 {
		t.Errorf("expected overall 50, got %f", s.OverallEfficiency)
	}
	if s.PackedVolume != 1000 {
		t.Errorf("expected packed volume 1000, got %f", s.PackedVolume)
	}
}
