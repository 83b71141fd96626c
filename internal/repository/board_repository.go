package repository

import (
	"context"
	"errors"

	"pedalboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Board, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetByIDs resolves a set of board references in one query.
func (r *BoardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Board, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// Delete removes the board template and nulls out references held by
// placements, mirroring pedal deletion.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.BoardPlacement{}).Where("board_id = ?", id).Update("board_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Board{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssetNotFound
		}
		return nil
	})
}

func (r *BoardRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Update("verified", verified).Error
}
