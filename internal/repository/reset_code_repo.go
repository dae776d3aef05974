package repository

import (
	"context"
	"time"

	"beachride/internal/domain"

	"gorm.io/gorm"
)

type ResetCodeRepository struct {
	db *gorm.DB
}

func NewResetCodeRepository(db *gorm.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

type resetCodeModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id;index"`
	CodeHash  string     `gorm:"column:code_hash"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (resetCodeModel) TableName() string { return "password_reset_codes" }

func (r *ResetCodeRepository) Create(ctx context.Context, c *domain.PasswordResetCode) error {
	m := resetCodeModel{
		UserID:    c.UserID,
		CodeHash:  c.CodeHash,
		ExpiresAt: c.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// GetValid returns the newest unused, unexpired code for a user.
func (r *ResetCodeRepository) GetValid(ctx context.Context, userID int64) (*domain.PasswordResetCode, error) {
	var m resetCodeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &domain.PasswordResetCode{
		ID:        m.ID,
		UserID:    m.UserID,
		CodeHash:  m.CodeHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *ResetCodeRepository) MarkUsed(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&resetCodeModel{}).
		Where("id = ?", id).
		Update("used_at", &now).Error
}

func (r *ResetCodeRepository) DeleteStale(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", time.Now()).
		Delete(&resetCodeModel{})
	return res.RowsAffected, res.Error
}
