package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewItemGeneratesID(t *testing.T) {
	a := NewItem("Box", 1, 2, 3)
	b := NewItem("Box", 1, 2, 3)
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected generated IDs")
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %s", a.ID)
	}
	if a.Volume() != 6 {
		t.Errorf("expected volume 6, got %f", a.Volume())
	}
}

func TestBinVolume(t *testing.T) {
	if v := NewBin(10, 20, 30).Volume(); v != 6000 {
		t.Errorf("expected 6000, got %f", v)
	}
	if v := NewBin(0, 0, 0).Volume(); v != 0 {
		t.Errorf("expected 0 for degenerate bin, got %f", v)
	}
}

func TestPlacementDoesNotAliasItem(t *testing.T) {
	item := Item{ID: "a", Name: "Fridge", Width: 50, Height: 80, Depth: 50}
	p := NewPlacement(item, Point{X: 1, Y: 2, Z: 3})
	p.Name = "changed"
	if item.Name != "Fridge" {
		t.Errorf("placement must hold a copy, input became %q", item.Name)
	}
	if p.Origin() != (Point{X: 1, Y: 2, Z: 3}) {
		t.Errorf("unexpected origin %+v", p.Origin())
	}
}

func TestPlacementJSONIsFlat(t *testing.T) {
	p := NewPlacement(Item{ID: "a", Name: "TV", Width: 1, Height: 2, Depth: 3, Color: "#fff"}, Point{X: 4, Y: 5, Z: 6})
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	want := `{"id":"a","name":"TV","width":1,"height":2,"depth":3,"color":"#fff","x":4,"y":5,"z":6}`
	if got != want {
		t.Errorf("unexpected JSON\n got: %s\nwant: %s", got, want)
	}
}

func TestPackingResultCounts(t *testing.T) {
	r := PackingResult{
		PackedBins: []PackedBin{
			{Items: []Placement{{Item: Item{ID: "a"}}, {Item: Item{ID: "b"}}}},
			{Items: []Placement{{Item: Item{ID: "c"}}}},
		},
		UnpackedItems: []Item{{ID: "d"}},
	}
	if r.PackedCount() != 3 {
		t.Errorf("expected 3 packed, got %d", r.PackedCount())
	}
	if r.TotalItems() != 4 {
		t.Errorf("expected 4 total, got %d", r.TotalItems())
	}
}

func TestPackedBinUsedVolume(t *testing.T) {
	pb := PackedBin{Items: []Placement{
		{Item: Item{Width: 2, Height: 2, Depth: 2}},
		{Item: Item{Width: 1, Height: 1, Depth: 3}},
	}}
	if v := pb.UsedVolume(); v != 11 {
		t.Errorf("expected 11, got %f", v)
	}
}

func TestEffectiveSettings(t *testing.T) {
	def := DefaultSettings()

	r := PackingRequest{}
	if got := r.EffectiveSettings(def); got != def {
		t.Errorf("nil settings should fall back to defaults, got %+v", got)
	}

	r.Settings = &PackSettings{CandidateOrder: CandidateYZX}
	got := r.EffectiveSettings(def)
	if got.CandidateOrder != CandidateYZX {
		t.Errorf("expected yzx, got %s", got.CandidateOrder)
	}
	if got.ItemOrder != def.ItemOrder {
		t.Errorf("expected default item order, got %s", got.ItemOrder)
	}
}

func TestPackingRequestDecode(t *testing.T) {
	payload := `{"bins":[{"width":10,"height":10,"depth":10}],
		"items":[{"id":"1","name":"Crate","width":5,"height":5,"depth":5,"color":"#ff0000"}]}`
	var req PackingRequest
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&req); err != nil {
		t.Fatal(err)
	}
	if len(req.Bins) != 1 || len(req.Items) != 1 {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Items[0].Color != "#ff0000" {
		t.Errorf("color not carried, got %q", req.Items[0].Color)
	}
	if req.Settings != nil {
		t.Error("settings should be nil when omitted")
	}
}
