package model

import "github.com/google/uuid"

// ContainerPreset represents a reusable bin definition.
type ContainerPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
	Depth  float64 `json:"depth"`  // cm
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, w, h, d float64) ContainerPreset {
	return ContainerPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
		Depth:  d,
	}
}

// ToBins expands the preset into qty identical bins.
func (cp ContainerPreset) ToBins(qty int) []Bin {
	bins := make([]Bin, 0, qty)
	for i := 0; i < qty; i++ {
		bins = append(bins, Bin{Width: cp.Width, Height: cp.Height, Depth: cp.Depth})
	}
	return bins
}

// Catalog holds the saved container presets.
type Catalog struct {
	Containers []ContainerPreset `json:"containers"`
}

// DefaultCatalog returns a catalog of common container sizes (internal
// dimensions, width x height x depth in cm).
func DefaultCatalog() Catalog {
	return Catalog{
		Containers: []ContainerPreset{
			NewContainerPreset("20ft Container", 235, 239, 590),
			NewContainerPreset("40ft Container", 235, 239, 1203),
			NewContainerPreset("40ft High Cube", 235, 269, 1203),
			NewContainerPreset("EUR Pallet 1.5m", 80, 150, 120),
			NewContainerPreset("Storage Unit S", 100, 250, 150),
			NewContainerPreset("Storage Unit M", 500, 300, 400),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (c *Catalog) FindByID(id string) *ContainerPreset {
	for i := range c.Containers {
		if c.Containers[i].ID == id {
			return &c.Containers[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (c *Catalog) FindByName(name string) *ContainerPreset {
	for i := range c.Containers {
		if c.Containers[i].Name == name {
			return &c.Containers[i]
		}
	}
	return nil
}

// Names returns the preset names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Containers))
	for i, p := range c.Containers {
		names[i] = p.Name
	}
	return names
}
