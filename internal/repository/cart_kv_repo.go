package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CartKV stores serialized carts in the cart_sessions table. It satisfies
// the cart store's key-value port; tests use an in-memory map instead.
type CartKV struct {
	db *gorm.DB
}

func NewCartKV(db *gorm.DB) *CartKV {
	return &CartKV{db: db}
}

type cartSessionModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	Payload   []byte    `gorm:"column:payload"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartSessionModel) TableName() string { return "cart_sessions" }

func (kv *CartKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var m cartSessionModel
	err := kv.db.WithContext(ctx).Where("token = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m.Payload, true, nil
}

func (kv *CartKV) Set(ctx context.Context, key string, value []byte) error {
	m := cartSessionModel{Token: key, Payload: value, UpdatedAt: time.Now()}
	return kv.db.WithContext(ctx).Save(&m).Error
}

func (kv *CartKV) Delete(ctx context.Context, key string) error {
	return kv.db.WithContext(ctx).Where("token = ?", key).Delete(&cartSessionModel{}).Error
}
