package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// HealthRepository runs the health monitor's storage probes.
type HealthRepository struct {
	db *gorm.DB
}

func NewHealthRepository(db *gorm.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

type healthCheckModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Status    string    `gorm:"column:status"`
	CheckedAt time.Time `gorm:"column:checked_at"`
}

func (healthCheckModel) TableName() string { return "health_checks" }

// WriteProbe inserts a probe row, proving the database accepts writes.
func (r *HealthRepository) WriteProbe(ctx context.Context, status string) error {
	m := healthCheckModel{Status: status, CheckedAt: time.Now()}
	return r.db.WithContext(ctx).Create(&m).Error
}

// CheckBookingsReadable and CheckPhotosReadable issue limited counts against
// the two tables the public site depends on.
func (r *HealthRepository) CheckBookingsReadable(ctx context.Context) error {
	var n int64
	return r.db.WithContext(ctx).Model(&bookingModel{}).Limit(1).Count(&n).Error
}

func (r *HealthRepository) CheckPhotosReadable(ctx context.Context) error {
	var n int64
	return r.db.WithContext(ctx).Model(&vehiclePhotoModel{}).Limit(1).Count(&n).Error
}

// DeleteProbesBefore trims old probe rows; run by cmd/sweeper.
func (r *HealthRepository) DeleteProbesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("checked_at < ?", cutoff).
		Delete(&healthCheckModel{})
	return res.RowsAffected, res.Error
}
