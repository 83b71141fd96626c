// Package layout merges incoming placement edits against the
// placements already stored on a pedalboard. The merge is a pure,
// single-pass transformation: it performs no I/O and callers may
// re-invoke it freely on a read-only snapshot.
package layout

import "github.com/google/uuid"

// Defaults are the type-specific sizes applied when neither the edit
// nor the matched placement carries a value.
type Defaults struct {
	WidthCm  float64
	HeightCm float64
}

var (
	PedalDefaults = Defaults{WidthCm: 8, HeightCm: 8}
	BoardDefaults = Defaults{WidthCm: 30, HeightCm: 30}
)

// DefaultZIndex is the stacking order assigned when neither side of
// the cascade supplies one.
const DefaultZIndex = 10

// Placement is the scene-level view of one positioned sprite.
// AssetID is nil when the source asset has been deleted; Src then
// carries the frozen image reference.
type Placement struct {
	ID       uuid.UUID
	AssetID  *uuid.UUID
	Src      string
	X        float64
	Y        float64
	Rotation float64
	ZIndex   int
	WidthCm  float64
	HeightCm float64
	Spec     string
}

// Edit is one entry of a client-submitted layout. A zero field means
// "not supplied": the reconciled value falls back to the matched
// placement, then to the defaults.
type Edit struct {
	ID       string
	AssetID  string
	Src      string
	X        float64
	Y        float64
	Rotation float64
	ZIndex   int
	WidthCm  float64
	HeightCm float64
	Spec     string
}

// Reconcile produces the new placement list for one layout update.
//
// Edits matching an existing placement by id keep that placement's
// asset reference and src (identity and art are fixed once placed)
// and take their geometry from the edit with an edit -> existing ->
// default cascade. Edits with no matching id become brand-new
// placements built from the edit alone; a stale id is deliberately
// accepted as a new placement rather than rejected.
//
// The output order equals the edit order and its length equals
// len(edits): existing placements that are not resubmitted are
// dropped. Callers must send the full layout on every update.
func Reconcile(existing []Placement, edits []Edit, def Defaults) []Placement {
	byID := make(map[uuid.UUID]Placement, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}

	out := make([]Placement, 0, len(edits))
	for _, e := range edits {
		if id, err := uuid.Parse(e.ID); err == nil {
			if prev, ok := byID[id]; ok {
				out = append(out, merge(prev, e, def))
				continue
			}
		}
		out = append(out, create(e, def))
	}
	return out
}

// merge applies an edit to its matched placement. The asset
// reference and src are never overwritable by a layout edit.
func merge(prev Placement, e Edit, def Defaults) Placement {
	return Placement{
		ID:       prev.ID,
		AssetID:  prev.AssetID,
		Src:      prev.Src,
		X:        pick(e.X, prev.X, 0),
		Y:        pick(e.Y, prev.Y, 0),
		Rotation: pick(e.Rotation, prev.Rotation, 0),
		ZIndex:   pickInt(e.ZIndex, prev.ZIndex, DefaultZIndex),
		WidthCm:  pick(e.WidthCm, prev.WidthCm, def.WidthCm),
		HeightCm: pick(e.HeightCm, prev.HeightCm, def.HeightCm),
		Spec:     pickStr(e.Spec, prev.Spec),
	}
}

// create builds a placement from an edit alone, never inheriting
// from any existing placement.
func create(e Edit, def Defaults) Placement {
	p := Placement{
		ID:       uuid.New(),
		Src:      e.Src,
		X:        e.X,
		Y:        e.Y,
		Rotation: e.Rotation,
		ZIndex:   pickInt(e.ZIndex, 0, DefaultZIndex),
		WidthCm:  pick(e.WidthCm, 0, def.WidthCm),
		HeightCm: pick(e.HeightCm, 0, def.HeightCm),
		Spec:     e.Spec,
	}
	if assetID, err := uuid.Parse(e.AssetID); err == nil {
		p.AssetID = &assetID
	}
	return p
}

func pick(edit, prev, def float64) float64 {
	if edit != 0 {
		return edit
	}
	if prev != 0 {
		return prev
	}
	return def
}

func pickInt(edit, prev, def int) int {
	if edit != 0 {
		return edit
	}
	if prev != 0 {
		return prev
	}
	return def
}

func pickStr(edit, prev string) string {
	if edit != "" {
		return edit
	}
	return prev
}
