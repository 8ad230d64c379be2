package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimension is returned for items with a non-positive or
// non-finite dimension, and for bins with a negative or non-finite one.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrInvalidItem is returned for items with a missing or duplicate id.
var ErrInvalidItem = errors.New("invalid item")

// Both wrap ErrInvalidItem.
var (
	ErrMissingID   = fmt.Errorf("%w: missing id", ErrInvalidItem)
	ErrDuplicateID = fmt.Errorf("%w: duplicate id", ErrInvalidItem)
)

// ErrInvalidSettings is returned for unknown candidate or item orders.
var ErrInvalidSettings = errors.New("invalid settings")

// ValidationError describes one rejected input.
type ValidationError struct {
	Entity string // "item" or "bin"
	Ref    string // item id or bin index
	Field  string
	Value  float64
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "id" {
		return fmt.Sprintf("%s %q: %v", e.Entity, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s %s: %s %v: %v", e.Entity, e.Ref, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateItems checks that every item has a unique non-empty id and
// strictly positive finite dimensions.
func ValidateItems(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		switch {
		case it.ID == "":
			return &ValidationError{Entity: "item", Ref: it.ID, Field: "id", Err: ErrMissingID}
		case seen[it.ID]:
			return &ValidationError{Entity: "item", Ref: it.ID, Field: "id", Err: ErrDuplicateID}
		}
		seen[it.ID] = true

		dims := []struct {
			name string
			v    float64
		}{{"width", it.Width}, {"height", it.Height}, {"depth", it.Depth}}
		for _, d := range dims {
			if !finite(d.v) || d.v <= 0 {
				return &ValidationError{Entity: "item", Ref: fmt.Sprintf("%q", it.ID), Field: d.name, Value: d.v, Err: ErrInvalidDimension}
			}
		}
	}
	return nil
}

// ValidateBins rejects negative or non-finite bin dimensions. Zero is
// accepted: a zero-volume bin is degenerate and never fits any item.
func ValidateBins(bins []Bin) error {
	for i, b := range bins {
		dims := []struct {
			name string
			v    float64
		}{{"width", b.Width}, {"height", b.Height}, {"depth", b.Depth}}
		for _, d := range dims {
			if !finite(d.v) || d.v < 0 {
				return &ValidationError{Entity: "bin", Ref: fmt.Sprintf("%d", i+1), Field: d.name, Value: d.v, Err: ErrInvalidDimension}
			}
		}
	}
	return nil
}

// Validate checks that both orders are known.
func (s PackSettings) Validate() error {
	switch s.CandidateOrder {
	case CandidateDistance, CandidateYZX, CandidateZYX:
	default:
		return fmt.Errorf("candidate order %q: %w", s.CandidateOrder, ErrInvalidSettings)
	}
	switch s.ItemOrder {
	case ItemOrderVolume, ItemOrderInput:
	default:
		return fmt.Errorf("item order %q: %w", s.ItemOrder, ErrInvalidSettings)
	}
	return nil
}
