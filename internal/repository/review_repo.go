package repository

import (
	"context"
	"time"

	"beachride/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) DB() *gorm.DB { return r.db }

type reviewModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BookingID   int64     `gorm:"column:booking_id;uniqueIndex"`
	VehicleType string    `gorm:"column:vehicle_type;index"`
	Name        string    `gorm:"column:name"`
	Rating      int       `gorm:"column:rating"`
	Comment     *string   `gorm:"column:comment"`
	Status      string    `gorm:"column:status;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}
	return &domain.Review{
		ID:          m.ID,
		BookingID:   m.BookingID,
		VehicleType: domain.VehicleType(m.VehicleType),
		Name:        m.Name,
		Rating:      m.Rating,
		Comment:     comment,
		Status:      domain.ReviewStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	var comment *string
	if rv.Comment != "" {
		v := rv.Comment
		comment = &v
	}
	m := reviewModel{
		BookingID:   rv.BookingID,
		VehicleType: string(rv.VehicleType),
		Name:        rv.Name,
		Rating:      rv.Rating,
		Comment:     comment,
		Status:      string(rv.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("booking_id = ?", bookingID).
		Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepository) GetApproved(ctx context.Context, vehicleType string, limit, offset int) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ReviewApproved))
	if vehicleType != "" {
		q = q.Where("vehicle_type = ?", vehicleType)
	}

	var models []reviewModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) GetByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&reviewModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []reviewModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, total, nil
}

func (r *ReviewRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Review, error) {
	res := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&reviewModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
