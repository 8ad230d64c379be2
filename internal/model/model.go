package model

import "github.com/google/uuid"

// Point represents a 3D coordinate. Units are whatever the caller uses for
// item and bin dimensions (the HTTP API and quotes assume centimetres).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Item is a cuboid to be packed. Name and Color are carried through
// unchanged and never influence placement.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`  // x extent
	Height float64 `json:"height"` // y extent
	Depth  float64 `json:"depth"`  // z extent
	Color  string  `json:"color"`
}

func NewItem(name string, w, h, d float64) Item {
	return Item{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
		Depth:  d,
	}
}

// Volume returns width * height * depth.
func (i Item) Volume() float64 {
	return i.Width * i.Height * i.Depth
}

// Bin is a fixed-size container. Its valid placement volume is
// [0,Width] x [0,Height] x [0,Depth].
type Bin struct {
	ID     string  `json:"id,omitempty"` // caller reference, echoed in PackedBin.Bin
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

func NewBin(w, h, d float64) Bin {
	return Bin{Width: w, Height: h, Depth: d}
}

// Volume returns width * height * depth.
func (b Bin) Volume() float64 {
	return b.Width * b.Height * b.Depth
}

// Placement is an item together with the origin of its minimum corner.
// The embedded Item is a copy; the caller's input item is never modified.
type Placement struct {
	Item
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPlacement associates item with origin p.
func NewPlacement(item Item, p Point) Placement {
	return Placement{Item: item, X: p.X, Y: p.Y, Z: p.Z}
}

// Origin returns the minimum corner of the placed item.
func (p Placement) Origin() Point {
	return Point{X: p.X, Y: p.Y, Z: p.Z}
}

// PackedBin is one attempted bin with the items accepted into it, in the
// order they were accepted.
type PackedBin struct {
	BinID      string      `json:"bin_id"` // "Bin N", 1-based position in the bin list
	Bin        Bin         `json:"bin"`
	Items      []Placement `json:"packed_items"`
	Efficiency float64     `json:"efficiency"` // percent, full precision
}

// UsedVolume returns the summed volume of the placed items.
func (pb PackedBin) UsedVolume() float64 {
	var total float64
	for _, p := range pb.Items {
		total += p.Volume()
	}
	return total
}

// PackingResult holds the full solution for one packing call.
type PackingResult struct {
	PackedBins    []PackedBin `json:"packed_bins"`
	UnpackedItems []Item      `json:"unpacked_items"`
}

// PackedCount returns the number of items placed across all bins.
func (r PackingResult) PackedCount() int {
	n := 0
	for _, b := range r.PackedBins {
		n += len(b.Items)
	}
	return n
}

// TotalItems returns placed plus unpacked items.
func (r PackingResult) TotalItems() int {
	return r.PackedCount() + len(r.UnpackedItems)
}

// CandidateOrder selects the sort key applied to candidate points.
type CandidateOrder string

const (
	CandidateDistance CandidateOrder = "distance" // Squared distance from the origin, ascending
	CandidateYZX      CandidateOrder = "yzx"      // Lexicographic (y, z, x): fill the floor first
	CandidateZYX      CandidateOrder = "zyx"      // Lexicographic (z, y, x): fill back to front
)

// CandidateOrders lists every supported candidate order.
var CandidateOrders = []CandidateOrder{CandidateDistance, CandidateYZX, CandidateZYX}

// ItemOrder selects how items are ordered before packing.
type ItemOrder string

const (
	ItemOrderVolume ItemOrder = "volume" // Descending volume, ties keep input order
	ItemOrderInput  ItemOrder = "input"  // Caller order unchanged
)

// ItemOrders lists every supported item order.
var ItemOrders = []ItemOrder{ItemOrderVolume, ItemOrderInput}

// PackSettings holds the packer policy.
type PackSettings struct {
	CandidateOrder CandidateOrder `json:"candidate_order"`
	ItemOrder      ItemOrder      `json:"item_order"`
}

func DefaultSettings() PackSettings {
	return PackSettings{
		CandidateOrder: CandidateDistance,
		ItemOrder:      ItemOrderVolume,
	}
}

// PackingRequest is the input of one packing call, as accepted by the HTTP
// API and stored in request files.
type PackingRequest struct {
	Bins     []Bin         `json:"bins"`
	Items    []Item        `json:"items"`
	Settings *PackSettings `json:"settings,omitempty"`
}

// EffectiveSettings returns the request settings, falling back to def for
// anything not set.
func (r PackingRequest) EffectiveSettings(def PackSettings) PackSettings {
	if r.Settings == nil {
		return def
	}
	s := *r.Settings
	if s.CandidateOrder == "" {
		s.CandidateOrder = def.CandidateOrder
	}
	if s.ItemOrder == "" {
		s.ItemOrder = def.ItemOrder
	}
	return s
}
