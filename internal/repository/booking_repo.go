package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"beachride/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSlotTaken is returned when a capacity-checked insert finds the
// requested slot already holding as many active bookings as the vehicle
// has units. The check and the insert run in one transaction.
var ErrSlotTaken = errors.New("slot taken")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

type bookingModel struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Reference           string     `gorm:"column:reference;uniqueIndex"`
	CustomerName        string     `gorm:"column:customer_name"`
	CustomerPhone       string     `gorm:"column:customer_phone"`
	CustomerEmail       *string    `gorm:"column:customer_email"`
	VehicleID           int64      `gorm:"column:vehicle_id;index:idx_bookings_slot"`
	VehicleType         string     `gorm:"column:vehicle_type"`
	VehicleName         string     `gorm:"column:vehicle_name"`
	Date                string     `gorm:"column:date;index:idx_bookings_slot"`
	TimeSlot            string     `gorm:"column:time_slot;index:idx_bookings_slot"`
	DurationMinutes     int        `gorm:"column:duration_minutes"`
	TotalPrice          int64      `gorm:"column:total_price"`
	TotalPriceFormatted string     `gorm:"column:total_price_formatted"`
	Status              string     `gorm:"column:status"`
	SpecialRequest      *string    `gorm:"column:special_request"`
	UserID              *int64     `gorm:"column:user_id"`
	CancellationReason  *string    `gorm:"column:cancellation_reason"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
	CancelledAt         *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var email, request, reason string
	if m.CustomerEmail != nil {
		email = *m.CustomerEmail
	}
	if m.SpecialRequest != nil {
		request = *m.SpecialRequest
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                  m.ID,
		Reference:           m.Reference,
		CustomerName:        m.CustomerName,
		CustomerPhone:       m.CustomerPhone,
		CustomerEmail:       email,
		VehicleID:           m.VehicleID,
		VehicleType:         domain.VehicleType(m.VehicleType),
		VehicleName:         m.VehicleName,
		Date:                m.Date,
		TimeSlot:            m.TimeSlot,
		DurationMinutes:     m.DurationMinutes,
		TotalPrice:          m.TotalPrice,
		TotalPriceFormatted: m.TotalPriceFormatted,
		Status:              domain.BookingStatus(m.Status),
		SpecialRequest:      request,
		UserID:              m.UserID,
		CancellationReason:  reason,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		CancelledAt:         m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var email, request, reason *string
	if b.CustomerEmail != "" {
		v := b.CustomerEmail
		email = &v
	}
	if b.SpecialRequest != "" {
		v := b.SpecialRequest
		request = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                  b.ID,
		Reference:           b.Reference,
		CustomerName:        b.CustomerName,
		CustomerPhone:       b.CustomerPhone,
		CustomerEmail:       email,
		VehicleID:           b.VehicleID,
		VehicleType:         string(b.VehicleType),
		VehicleName:         b.VehicleName,
		Date:                b.Date,
		TimeSlot:            b.TimeSlot,
		DurationMinutes:     b.DurationMinutes,
		TotalPrice:          b.TotalPrice,
		TotalPriceFormatted: b.TotalPriceFormatted,
		Status:              string(b.Status),
		SpecialRequest:      request,
		UserID:              b.UserID,
		CancellationReason:  reason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
		CancelledAt:         b.CancelledAt,
	}
}

var activeStatuses = []string{string(domain.BookingPending), string(domain.BookingConfirmed)}

// CreateIfAvailable inserts the booking only while the slot still has a
// free unit. Count and insert share one transaction so two concurrent
// submissions cannot both pass the check.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking, units int) error {
	return r.CreateBatchIfAvailable(ctx, []*domain.Booking{b}, map[int64]int{b.VehicleID: units})
}

// CreateBatchIfAvailable inserts all bookings or none. Used by checkout,
// where one cart line expands into quantity inserts.
func (r *BookingRepository) CreateBatchIfAvailable(ctx context.Context, bookings []*domain.Booking, unitsByVehicle map[int64]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the vehicle rows first so two transactions cannot both
		// pass the capacity count below; without the lock, READ COMMITTED
		// lets both count the same free slot and both insert. Ascending
		// id order keeps concurrent checkouts from deadlocking. SQLite
		// has no FOR UPDATE; its single writer gives the same guarantee.
		if tx.Dialector.Name() != "sqlite" {
			ids := make([]int64, 0, len(unitsByVehicle))
			for id := range unitsByVehicle {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			var locked []int64
			err := tx.Model(&vehicleModel{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ?", ids).
				Order("id").
				Pluck("id", &locked).Error
			if err != nil {
				return err
			}
		}

		// How many units each (vehicle, date, slot) key needs from this batch.
		type slotKey struct {
			vehicleID int64
			date      string
			slot      string
		}
		needed := make(map[slotKey]int)
		for _, b := range bookings {
			needed[slotKey{b.VehicleID, b.Date, b.TimeSlot}]++
		}

		for k, n := range needed {
			var taken int64
			err := tx.Model(&bookingModel{}).
				Where("vehicle_id = ? AND date = ? AND time_slot = ? AND status IN ?",
					k.vehicleID, k.date, k.slot, activeStatuses).
				Count(&taken).Error
			if err != nil {
				return err
			}
			if int(taken)+n > unitsByVehicle[k.vehicleID] {
				return ErrSlotTaken
			}
		}

		for _, b := range bookings {
			m := toBookingModel(b)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*b = *toDomainBooking(m)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// GetActiveSlotCounts returns, per time slot, how many active bookings a
// vehicle already has on the given date. Cancelled rows never count.
func (r *BookingRepository) GetActiveSlotCounts(ctx context.Context, vehicleID int64, date string) (map[string]int, error) {
	type row struct {
		TimeSlot string
		N        int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Select("time_slot, COUNT(1) AS n").
		Where("vehicle_id = ? AND date = ? AND status IN ?", vehicleID, date, activeStatuses).
		Group("time_slot").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.TimeSlot] = r.N
	}
	return out, nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time_slot DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

type BookingFilters struct {
	Status      string
	VehicleType string
	Date        string
	// Search matches customer name or phone, case-insensitive substring.
	Search string
	Limit  int
	Offset int
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VehicleType != "" {
		q = q.Where("vehicle_type = ?", f.VehicleType)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR customer_phone LIKE ?", pattern, "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	var models []bookingModel
	err := q.Order("date DESC, time_slot DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountStalePending counts pending bookings created before the cutoff.
// The health monitor reports these as a warning.
func (r *BookingRepository) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ? AND created_at < ?", string(domain.BookingPending), cutoff).
		Count(&n).Error
	return n, err
}

// CancelPendingBefore cancels pending bookings whose rental day has
// already passed. Run by cmd/sweeper.
func (r *BookingRepository) CancelPendingBefore(ctx context.Context, date string, reason string) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ? AND date < ?", string(domain.BookingPending), date).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		})
	return res.RowsAffected, res.Error
}
