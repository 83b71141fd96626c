package handler

import (
	"pedalboard/internal/layout"
	"pedalboard/internal/model"

	"github.com/google/uuid"
)

// PedalPlacementPayload is one pedal entry of a client-submitted
// layout. Wire names follow the original contract.
type PedalPlacementPayload struct {
	ID       string  `json:"id"`
	PedalID  string  `json:"pedalId"`
	Src      string  `json:"src"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	Spec     string  `json:"spec"`
}

// BoardPlacementPayload mirrors PedalPlacementPayload for board
// sprites.
type BoardPlacementPayload struct {
	ID       string  `json:"id"`
	BoardID  string  `json:"boardId"`
	Src      string  `json:"src"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

func pedalEdits(payloads []PedalPlacementPayload) []layout.Edit {
	edits := make([]layout.Edit, len(payloads))
	for i, p := range payloads {
		edits[i] = layout.Edit{
			ID:       p.ID,
			AssetID:  p.PedalID,
			Src:      p.Src,
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
			ZIndex:   p.ZIndex,
			WidthCm:  p.WidthCm,
			HeightCm: p.HeightCm,
			Spec:     p.Spec,
		}
	}
	return edits
}

func boardEdits(payloads []BoardPlacementPayload) []layout.Edit {
	edits := make([]layout.Edit, len(payloads))
	for i, b := range payloads {
		edits[i] = layout.Edit{
			ID:       b.ID,
			AssetID:  b.BoardID,
			Src:      b.Src,
			X:        b.X,
			Y:        b.Y,
			Rotation: b.Rotation,
			ZIndex:   b.ZIndex,
			WidthCm:  b.WidthCm,
			HeightCm: b.HeightCm,
		}
	}
	return edits
}

func pedalPlacementsToLayout(placements []model.PedalPlacement) []layout.Placement {
	out := make([]layout.Placement, len(placements))
	for i, p := range placements {
		out[i] = layout.Placement{
			ID:       p.ID,
			AssetID:  p.PedalID,
			Src:      p.Src,
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
			ZIndex:   p.ZIndex,
			WidthCm:  p.WidthCm,
			HeightCm: p.HeightCm,
			Spec:     p.Spec,
		}
	}
	return out
}

func boardPlacementsToLayout(placements []model.BoardPlacement) []layout.Placement {
	out := make([]layout.Placement, len(placements))
	for i, b := range placements {
		out[i] = layout.Placement{
			ID:       b.ID,
			AssetID:  b.BoardID,
			Src:      b.Src,
			X:        b.X,
			Y:        b.Y,
			Rotation: b.Rotation,
			ZIndex:   b.ZIndex,
			WidthCm:  b.WidthCm,
			HeightCm: b.HeightCm,
		}
	}
	return out
}

func layoutToPedalPlacements(pedalboardID uuid.UUID, placements []layout.Placement) []model.PedalPlacement {
	out := make([]model.PedalPlacement, len(placements))
	for i, p := range placements {
		out[i] = model.PedalPlacement{
			ID:           p.ID,
			PedalboardID: pedalboardID,
			PedalID:      p.AssetID,
			X:            p.X,
			Y:            p.Y,
			Rotation:     p.Rotation,
			ZIndex:       p.ZIndex,
			WidthCm:      p.WidthCm,
			HeightCm:     p.HeightCm,
			Src:          p.Src,
			Spec:         p.Spec,
			Position:     i,
		}
	}
	return out
}

func layoutToBoardPlacements(pedalboardID uuid.UUID, placements []layout.Placement) []model.BoardPlacement {
	out := make([]model.BoardPlacement, len(placements))
	for i, b := range placements {
		out[i] = model.BoardPlacement{
			ID:           b.ID,
			PedalboardID: pedalboardID,
			BoardID:      b.AssetID,
			X:            b.X,
			Y:            b.Y,
			Rotation:     b.Rotation,
			ZIndex:       b.ZIndex,
			WidthCm:      b.WidthCm,
			HeightCm:     b.HeightCm,
			Src:          b.Src,
			Position:     i,
		}
	}
	return out
}
