package repository

import (
	"context"
	"time"

	"beachride/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) DB() *gorm.DB { return r.db }

type vehicleModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Slug             string    `gorm:"column:slug;uniqueIndex"`
	Name             string    `gorm:"column:name"`
	Type             string    `gorm:"column:type"`
	Description      *string   `gorm:"column:description"`
	PricePerHalfHour int64     `gorm:"column:price_per_half_hour"`
	Units            int       `gorm:"column:units"`
	Active           bool      `gorm:"column:active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (vehicleModel) TableName() string { return "vehicles" }

func toDomainVehicle(m vehicleModel) *domain.Vehicle {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Vehicle{
		ID:               m.ID,
		Slug:             m.Slug,
		Name:             m.Name,
		Type:             domain.VehicleType(m.Type),
		Description:      desc,
		PricePerHalfHour: m.PricePerHalfHour,
		Units:            m.Units,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var m vehicleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	var m vehicleModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) GetActive(ctx context.Context) ([]domain.Vehicle, error) {
	var models []vehicleModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("type, price_per_half_hour").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Vehicle, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) GetActiveByType(ctx context.Context, vt domain.VehicleType) ([]domain.Vehicle, error) {
	var models []vehicleModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND type = ?", true, string(vt)).
		Order("price_per_half_hour").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Vehicle, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}
