package repository

import (
	"context"
	"time"

	"beachride/internal/domain"

	"gorm.io/gorm"
)

type VehiclePhotoRepository struct {
	db *gorm.DB
}

func NewVehiclePhotoRepository(db *gorm.DB) *VehiclePhotoRepository {
	return &VehiclePhotoRepository{db: db}
}

func (r *VehiclePhotoRepository) DB() *gorm.DB { return r.db }

type vehiclePhotoModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	VehicleType  string    `gorm:"column:vehicle_type;index"`
	ImageURL     string    `gorm:"column:image_url"`
	Caption      *string   `gorm:"column:caption"`
	DisplayOrder int       `gorm:"column:display_order"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (vehiclePhotoModel) TableName() string { return "vehicle_photos" }

func toDomainPhoto(m vehiclePhotoModel) *domain.VehiclePhoto {
	var caption string
	if m.Caption != nil {
		caption = *m.Caption
	}
	return &domain.VehiclePhoto{
		ID:           m.ID,
		VehicleType:  domain.VehicleType(m.VehicleType),
		ImageURL:     m.ImageURL,
		Caption:      caption,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *VehiclePhotoRepository) Create(ctx context.Context, p *domain.VehiclePhoto) error {
	var caption *string
	if p.Caption != "" {
		v := p.Caption
		caption = &v
	}
	m := vehiclePhotoModel{
		VehicleType:  string(p.VehicleType),
		ImageURL:     p.ImageURL,
		Caption:      caption,
		DisplayOrder: p.DisplayOrder,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPhoto(m)
	return nil
}

func (r *VehiclePhotoRepository) GetByID(ctx context.Context, id int64) (*domain.VehiclePhoto, error) {
	var m vehiclePhotoModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainPhoto(m), nil
}

func (r *VehiclePhotoRepository) GetByType(ctx context.Context, vt domain.VehicleType) ([]domain.VehiclePhoto, error) {
	var models []vehiclePhotoModel
	err := r.db.WithContext(ctx).
		Where("vehicle_type = ?", string(vt)).
		Order("display_order, id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.VehiclePhoto, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPhoto(m))
	}
	return out, nil
}

// NextDisplayOrder returns max(display_order)+1 for a vehicle type so new
// photos land at the end of the gallery.
func (r *VehiclePhotoRepository) NextDisplayOrder(ctx context.Context, vt domain.VehicleType) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&vehiclePhotoModel{}).
		Select("MAX(display_order)").
		Where("vehicle_type = ?", string(vt)).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// Reorder rewrites display_order for a vehicle type from the given ID
// sequence. IDs not listed keep their relative order after the listed ones.
func (r *VehiclePhotoRepository) Reorder(ctx context.Context, vt domain.VehicleType, orderedIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&vehiclePhotoModel{}).
				Where("id = ? AND vehicle_type = ?", id, string(vt)).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *VehiclePhotoRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&vehiclePhotoModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
