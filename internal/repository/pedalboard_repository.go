package repository

import (
	"context"
	"errors"

	"pedalboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PedalboardRepository struct {
	db *gorm.DB
}

type PedalboardRepositoryInterface interface {
	Create(ctx context.Context, pb *model.Pedalboard) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pedalboard, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Pedalboard, error)
	GetAll(ctx context.Context) ([]model.Pedalboard, error)
	GetAllExcept(ctx context.Context, exclude []uuid.UUID) ([]model.Pedalboard, error)
	GetLikedBy(ctx context.Context, userID uuid.UUID) ([]model.Pedalboard, error)
	Search(ctx context.Context, nameQuery string) ([]model.Pedalboard, error)
	Update(ctx context.Context, pb *model.Pedalboard) error
	ReplacePlacements(ctx context.Context, pb *model.Pedalboard) error
	UpdateLikes(ctx context.Context, id uuid.UUID, likedBy []string) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ PedalboardRepositoryInterface = (*PedalboardRepository)(nil)

func NewPedalboardRepository(db *gorm.DB) *PedalboardRepository {
	return &PedalboardRepository{db: db}
}

// withPlacements preloads both placement lists in their scene order.
func withPlacements(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Pedals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Boards", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

func (r *PedalboardRepository) Create(ctx context.Context, pb *model.Pedalboard) error {
	return r.db.WithContext(ctx).Create(pb).Error
}

func (r *PedalboardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pedalboard, error) {
	var pb model.Pedalboard
	err := withPlacements(r.db.WithContext(ctx)).Preload("Owner").Where("id = ?", id).First(&pb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pb, nil
}

func (r *PedalboardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Pedalboard, error) {
	var boards []model.Pedalboard
	err := withPlacements(r.db.WithContext(ctx)).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

func (r *PedalboardRepository) GetAll(ctx context.Context) ([]model.Pedalboard, error) {
	var boards []model.Pedalboard
	err := withPlacements(r.db.WithContext(ctx)).Preload("Owner").Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// GetAllExcept scans every pedalboard outside the given id set. Used
// for suggestion candidate generation.
func (r *PedalboardRepository) GetAllExcept(ctx context.Context, exclude []uuid.UUID) ([]model.Pedalboard, error) {
	var boards []model.Pedalboard
	q := withPlacements(r.db.WithContext(ctx)).Order("created_at DESC")
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	err := q.Find(&boards).Error
	return boards, err
}

// GetLikedBy returns the pedalboards whose liked-by set contains
// userID.
func (r *PedalboardRepository) GetLikedBy(ctx context.Context, userID uuid.UUID) ([]model.Pedalboard, error) {
	var boards []model.Pedalboard
	err := withPlacements(r.db.WithContext(ctx)).
		Where(datatypes.JSONArrayQuery("liked_by").Contains(userID.String())).
		Find(&boards).Error
	return boards, err
}

func (r *PedalboardRepository) Search(ctx context.Context, nameQuery string) ([]model.Pedalboard, error) {
	var boards []model.Pedalboard
	err := withPlacements(r.db.WithContext(ctx)).Preload("Owner").
		Where("name ILIKE ?", "%"+nameQuery+"%").
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *PedalboardRepository) Update(ctx context.Context, pb *model.Pedalboard) error {
	return r.db.WithContext(ctx).Omit("Pedals", "Boards", "Owner").Save(pb).Error
}

// ReplacePlacements persists a layout update: the pedalboard row is
// saved and both placement lists are replaced wholesale inside one
// transaction, matching the full-replace reconciliation contract.
func (r *PedalboardRepository) ReplacePlacements(ctx context.Context, pb *model.Pedalboard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Pedals", "Boards", "Owner").Save(pb).Error; err != nil {
			return err
		}
		if err := tx.Where("pedalboard_id = ?", pb.ID).Delete(&model.PedalPlacement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pedalboard_id = ?", pb.ID).Delete(&model.BoardPlacement{}).Error; err != nil {
			return err
		}
		if len(pb.Pedals) > 0 {
			if err := tx.Create(&pb.Pedals).Error; err != nil {
				return err
			}
		}
		if len(pb.Boards) > 0 {
			if err := tx.Create(&pb.Boards).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateLikes writes the liked-by set as-is. Last write wins: there
// is no optimistic concurrency token on likes.
func (r *PedalboardRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likedBy []string) error {
	return r.db.WithContext(ctx).Model(&model.Pedalboard{}).Where("id = ?", id).
		Update("liked_by", datatypes.NewJSONSlice(likedBy)).Error
}

func (r *PedalboardRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.db.WithContext(ctx).Model(&model.Pedalboard{}).Where("id = ?", id).Update("verified", verified).Error
}

func (r *PedalboardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedalboard_id = ?", id).Delete(&model.PedalPlacement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pedalboard_id = ?", id).Delete(&model.BoardPlacement{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Pedalboard{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPedalboardNotFound
		}
		return nil
	})
}
