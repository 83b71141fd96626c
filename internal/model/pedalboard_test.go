package model_test

import (
	"encoding/json"
	"testing"

	"pedalboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEstilos(t *testing.T) {
	assert.Equal(t, []string{"rock", "blues"}, model.NormalizeEstilos([]string{" Rock ", "BLUES", "rock"}))
	assert.Equal(t, []string{"outro"}, model.NormalizeEstilos(nil))
	assert.Equal(t, []string{"outro"}, model.NormalizeEstilos([]string{"polka", "vaporwave"}))
	assert.Equal(t, []string{"jazz"}, model.NormalizeEstilos([]string{"jazz", "not-a-genre"}))
}

func TestStringOrList_AcceptsScalarAndList(t *testing.T) {
	var fromScalar model.StringOrList
	assert.NoError(t, json.Unmarshal([]byte(`"rock"`), &fromScalar))
	assert.Equal(t, model.StringOrList{"rock"}, fromScalar)

	var fromList model.StringOrList
	assert.NoError(t, json.Unmarshal([]byte(`["rock","jazz"]`), &fromList))
	assert.Equal(t, model.StringOrList{"rock", "jazz"}, fromList)

	var fromEmpty model.StringOrList
	assert.NoError(t, json.Unmarshal([]byte(`""`), &fromEmpty))
	assert.Nil(t, fromEmpty)

	var invalid model.StringOrList
	assert.Error(t, json.Unmarshal([]byte(`42`), &invalid))
}

func TestToggleLike(t *testing.T) {
	pb := &model.Pedalboard{}
	userID := uuid.New()
	other := uuid.New()

	assert.True(t, pb.ToggleLike(userID))
	assert.True(t, pb.HasLike(userID))
	assert.Len(t, pb.LikedBy, 1)

	// Toggling again removes the like; other users are untouched.
	pb.ToggleLike(other)
	assert.False(t, pb.ToggleLike(userID))
	assert.False(t, pb.HasLike(userID))
	assert.True(t, pb.HasLike(other))
	assert.Len(t, pb.LikedBy, 1)
}

func TestCloneFor_FiltersDanglingPlacements(t *testing.T) {
	owner := uuid.New()
	newOwner := uuid.New()
	pedalID := uuid.New()
	boardID := uuid.New()

	pb := &model.Pedalboard{
		ID:      uuid.New(),
		Name:    "Stage Rig",
		Image:   "rig.png",
		OwnerID: owner,
		LikedBy: []string{uuid.New().String()},
		Pedals: []model.PedalPlacement{
			{ID: uuid.New(), PedalID: &pedalID, X: 5, Spec: "drive at noon"},
			{ID: uuid.New(), PedalID: nil, X: 9}, // asset deleted
		},
		Boards: []model.BoardPlacement{
			{ID: uuid.New(), BoardID: &boardID},
			{ID: uuid.New(), BoardID: nil},
		},
	}

	clone := pb.CloneFor(newOwner)

	assert.Equal(t, newOwner, clone.OwnerID)
	assert.Equal(t, pb.Name, clone.Name)
	assert.NotEqual(t, pb.ID, clone.ID)
	assert.Empty(t, clone.LikedBy)

	assert.Len(t, clone.Pedals, 1)
	assert.Equal(t, &pedalID, clone.Pedals[0].PedalID)
	assert.Equal(t, "drive at noon", clone.Pedals[0].Spec)
	assert.NotEqual(t, pb.Pedals[0].ID, clone.Pedals[0].ID)
	assert.Equal(t, clone.ID, clone.Pedals[0].PedalboardID)

	assert.Len(t, clone.Boards, 1)
	assert.Equal(t, &boardID, clone.Boards[0].BoardID)
}

func TestCopyFor_AppliesDefaultDimensions(t *testing.T) {
	owner := uuid.New()
	pedal := &model.Pedal{ID: uuid.New(), Name: "Screamer", Image: "ts.png", OwnerID: uuid.New()}

	copied := pedal.CopyFor(owner)

	assert.Equal(t, owner, copied.OwnerID)
	assert.NotEqual(t, pedal.ID, copied.ID)
	assert.Equal(t, float64(model.DefaultPedalWidthCm), copied.WidthCm)
	assert.Equal(t, float64(model.DefaultPedalHeightCm), copied.HeightCm)

	board := &model.Board{ID: uuid.New(), Name: "Classic 3", Image: "b.png", OwnerID: uuid.New()}
	copiedBoard := board.CopyFor(owner)
	assert.Equal(t, float64(model.DefaultBoardWidthCm), copiedBoard.WidthCm)
	assert.Equal(t, float64(model.DefaultBoardHeightCm), copiedBoard.HeightCm)
}
