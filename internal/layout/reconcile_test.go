package layout_test

import (
	"testing"

	"pedalboard/internal/layout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReconcile_WorkedExample(t *testing.T) {
	// reconcile([{id:1,pedalId:"X",src:"imgX",x:0,y:0}], [{id:1,x:10,y:20}])
	// -> [{id:1,pedalId:"X",src:"imgX",x:10,y:20,rotation:0,zIndex:10,widthCm:8,heightCm:8}]
	placementID := uuid.New()
	assetID := uuid.New()
	existing := []layout.Placement{{
		ID:      placementID,
		AssetID: &assetID,
		Src:     "imgX",
	}}
	edits := []layout.Edit{{ID: placementID.String(), X: 10, Y: 20}}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Len(t, result, 1)
	got := result[0]
	assert.Equal(t, placementID, got.ID)
	assert.Equal(t, &assetID, got.AssetID)
	assert.Equal(t, "imgX", got.Src)
	assert.Equal(t, 10.0, got.X)
	assert.Equal(t, 20.0, got.Y)
	assert.Equal(t, 0.0, got.Rotation)
	assert.Equal(t, 10, got.ZIndex)
	assert.Equal(t, 8.0, got.WidthCm)
	assert.Equal(t, 8.0, got.HeightCm)
}

func TestReconcile_OutputLengthEqualsEdits(t *testing.T) {
	// Full-replace contract: placements not resubmitted are dropped.
	kept := uuid.New()
	dropped := uuid.New()
	existing := []layout.Placement{
		{ID: kept, X: 1},
		{ID: dropped, X: 2},
	}
	edits := []layout.Edit{{ID: kept.String(), X: 5}}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Len(t, result, 1)
	assert.Equal(t, kept, result[0].ID)

	assert.Empty(t, layout.Reconcile(existing, nil, layout.PedalDefaults))
}

func TestReconcile_MatchedEditCannotOverwriteAssetOrSrc(t *testing.T) {
	placementID := uuid.New()
	assetID := uuid.New()
	otherAsset := uuid.New()
	existing := []layout.Placement{{
		ID:      placementID,
		AssetID: &assetID,
		Src:     "frozen.png",
	}}
	edits := []layout.Edit{{
		ID:      placementID.String(),
		AssetID: otherAsset.String(),
		Src:     "sneaky.png",
		X:       3,
	}}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Len(t, result, 1)
	assert.Equal(t, &assetID, result[0].AssetID)
	assert.Equal(t, "frozen.png", result[0].Src)
}

func TestReconcile_MatchedEditCascadesToExistingThenDefault(t *testing.T) {
	placementID := uuid.New()
	existing := []layout.Placement{{
		ID:       placementID,
		X:        7,
		Rotation: 45,
		WidthCm:  12,
	}}
	// Edit supplies only Y: X, rotation and width fall back to the
	// existing values, height and zIndex to the defaults.
	edits := []layout.Edit{{ID: placementID.String(), Y: 9}}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	got := result[0]
	assert.Equal(t, 7.0, got.X)
	assert.Equal(t, 9.0, got.Y)
	assert.Equal(t, 45.0, got.Rotation)
	assert.Equal(t, 12.0, got.WidthCm)
	assert.Equal(t, 8.0, got.HeightCm)
	assert.Equal(t, 10, got.ZIndex)
}

func TestReconcile_UnmatchedEditNeverInherits(t *testing.T) {
	existing := []layout.Placement{{
		ID:       uuid.New(),
		X:        99,
		Y:        99,
		Rotation: 180,
		WidthCm:  50,
		HeightCm: 50,
		Src:      "existing.png",
	}}
	assetID := uuid.New()
	edits := []layout.Edit{{AssetID: assetID.String(), X: 1}}

	result := layout.Reconcile(existing, edits, layout.BoardDefaults)

	assert.Len(t, result, 1)
	got := result[0]
	assert.Equal(t, &assetID, got.AssetID)
	assert.Equal(t, 1.0, got.X)
	assert.Equal(t, 0.0, got.Y)
	assert.Equal(t, 0.0, got.Rotation)
	assert.Equal(t, 30.0, got.WidthCm)
	assert.Equal(t, 30.0, got.HeightCm)
	assert.Equal(t, "", got.Src)
	assert.NotEqual(t, existing[0].ID, got.ID)
}

func TestReconcile_StaleIDTreatedAsNewPlacement(t *testing.T) {
	// An id that matches nothing is accepted permissively, never an
	// error.
	existing := []layout.Placement{{ID: uuid.New(), Src: "a.png"}}
	stale := uuid.New()
	edits := []layout.Edit{{ID: stale.String(), X: 4, Src: "b.png"}}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Len(t, result, 1)
	assert.NotEqual(t, stale, result[0].ID)
	assert.Equal(t, "b.png", result[0].Src)
	assert.Nil(t, result[0].AssetID)
}

func TestReconcile_OutputFollowsEditOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	existing := []layout.Placement{
		{ID: first, X: 1},
		{ID: second, X: 2},
	}
	// Resubmitted in reverse.
	edits := []layout.Edit{
		{ID: second.String(), X: 2},
		{ID: first.String(), X: 1},
	}

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Equal(t, second, result[0].ID)
	assert.Equal(t, first, result[1].ID)
}

func TestReconcile_Idempotent(t *testing.T) {
	assetID := uuid.New()
	existing := []layout.Placement{
		{
			ID:       uuid.New(),
			AssetID:  &assetID,
			Src:      "img.png",
			X:        10,
			Y:        20,
			Rotation: 90,
			ZIndex:   10,
			WidthCm:  8,
			HeightCm: 8,
			Spec:     "true bypass",
		},
		{
			ID:       uuid.New(),
			X:        5,
			ZIndex:   3,
			WidthCm:  12,
			HeightCm: 6,
		},
	}

	edits := make([]layout.Edit, len(existing))
	for i, p := range existing {
		edits[i] = layout.Edit{
			ID:       p.ID.String(),
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

	result := layout.Reconcile(existing, edits, layout.PedalDefaults)

	assert.Equal(t, existing, result)
}

func TestReconcile_SpecCascade(t *testing.T) {
	placementID := uuid.New()
	existing := []layout.Placement{{ID: placementID, Spec: "old notes"}}

	// Absent spec keeps the existing text.
	result := layout.Reconcile(existing, []layout.Edit{{ID: placementID.String()}}, layout.PedalDefaults)
	assert.Equal(t, "old notes", result[0].Spec)

	// A supplied spec wins.
	result = layout.Reconcile(existing, []layout.Edit{{ID: placementID.String(), Spec: "new notes"}}, layout.PedalDefaults)
	assert.Equal(t, "new notes", result[0].Spec)
}
