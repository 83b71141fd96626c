package repository

import (
	"context"
	"errors"

	"pedalboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedalRepository struct {
	db *gorm.DB
}

type PedalRepositoryInterface interface {
	Create(ctx context.Context, pedal *model.Pedal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pedal, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Pedal, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Pedal, error)
	Search(ctx context.Context, nameQuery string) ([]model.Pedal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

var _ PedalRepositoryInterface = (*PedalRepository)(nil)

func NewPedalRepository(db *gorm.DB) *PedalRepository {
	return &PedalRepository{db: db}
}

func (r *PedalRepository) Create(ctx context.Context, pedal *model.Pedal) error {
	return r.db.WithContext(ctx).Create(pedal).Error
}

func (r *PedalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pedal, error) {
	var pedal model.Pedal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pedal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pedal, nil
}

// GetByIDs resolves a set of pedal references in one query. Missing
// ids are simply absent from the result.
func (r *PedalRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Pedal, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pedals []model.Pedal
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pedals).Error
	return pedals, err
}

func (r *PedalRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Pedal, error) {
	var pedals []model.Pedal
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&pedals).Error
	return pedals, err
}

// Search lists pedals of every user, optionally filtered by a
// case-insensitive name match, newest first.
func (r *PedalRepository) Search(ctx context.Context, nameQuery string) ([]model.Pedal, error) {
	var pedals []model.Pedal
	q := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if nameQuery != "" {
		q = q.Where("name ILIKE ?", "%"+nameQuery+"%")
	}
	err := q.Find(&pedals).Error
	return pedals, err
}

// Delete removes the pedal and nulls out the asset reference on any
// placement that used it, so existing scenes keep rendering from
// their frozen src image.
func (r *PedalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PedalPlacement{}).Where("pedal_id = ?", id).Update("pedal_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Pedal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssetNotFound
		}
		return nil
	})
}

func (r *PedalRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.db.WithContext(ctx).Model(&model.Pedal{}).Where("id = ?", id).Update("verified", verified).Error
}
