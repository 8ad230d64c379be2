package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/piwi3910/cubepack/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Packer runs the 3D candidate-point packing algorithm. A Packer holds only
// its policy and tracer, so one instance may serve concurrent Pack calls.
type Packer struct {
	Settings model.PackSettings
	Tracer   trace.Tracer // one span per attempted bin; nil disables tracing
}

func New(settings model.PackSettings) *Packer {
	return &Packer{
		Settings: settings,
		Tracer:   otel.Tracer("cubepack/engine"),
	}
}

// Pack assigns items to bins in the given bin order. Items are ordered once
// by the item order policy; each bin is then offered every item not placed
// in an earlier bin, and whatever does not fit is carried forward. Bins are
// no longer attempted once every item has been placed.
//
// Inputs are never modified. Invalid dimensions or settings are rejected
// before any packing starts.
func (p *Packer) Pack(bins []model.Bin, items []model.Item) (model.PackingResult, error) {
	return p.PackContext(context.Background(), bins, items)
}

// PackContext is Pack with the per-bin spans parented to the span in ctx.
func (p *Packer) PackContext(ctx context.Context, bins []model.Bin, items []model.Item) (model.PackingResult, error) {
	if err := p.Settings.Validate(); err != nil {
		return model.PackingResult{}, err
	}
	if err := model.ValidateItems(items); err != nil {
		return model.PackingResult{}, err
	}
	if err := model.ValidateBins(bins); err != nil {
		return model.PackingResult{}, err
	}

	tracer := p.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	remaining := orderItems(items, p.Settings.ItemOrder)
	result := model.PackingResult{
		PackedBins: []model.PackedBin{},
	}

	for i, bin := range bins {
		if len(remaining) == 0 {
			break
		}

		_, span := tracer.Start(ctx, "pack.bin", trace.WithAttributes(
			attribute.String("bin.id", binID(i)),
			attribute.Int("bin.items_offered", len(remaining)),
		))
		placed, leftover := p.packBin(bin, remaining)
		pb := model.PackedBin{
			BinID:      binID(i),
			Bin:        bin,
			Items:      placed,
			Efficiency: Efficiency(bin, placed),
		}
		span.SetAttributes(
			attribute.Int("bin.items_placed", len(placed)),
			attribute.Float64("bin.efficiency", pb.Efficiency),
		)
		span.End()

		result.PackedBins = append(result.PackedBins, pb)
		remaining = leftover
	}

	result.UnpackedItems = remaining
	return result, nil
}

// packBin greedily places items into a single bin, returning the accepted
// placements and the items that did not fit, both in item order.
func (p *Packer) packBin(bin model.Bin, items []model.Item) ([]model.Placement, []model.Item) {
	placed := []model.Placement{}
	unplaced := []model.Item{}

	for _, item := range items {
		if pos, ok := Place(item, bin, placed, p.Settings.CandidateOrder); ok {
			placed = append(placed, model.NewPlacement(item, pos))
		} else {
			unplaced = append(unplaced, item)
		}
	}
	return placed, unplaced
}

// orderItems returns a sorted copy of items.
func orderItems(items []model.Item, order model.ItemOrder) []model.Item {
	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	if order == model.ItemOrderInput {
		return sorted
	}

	// Largest volume first, ties keep input order
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume() > sorted[j].Volume()
	})
	return sorted
}

// binID names the idx-th attempted bin. A caller-set Bin.ID stays on
// PackedBin.Bin.
func binID(idx int) string {
	return fmt.Sprintf("Bin %d", idx+1)
}
