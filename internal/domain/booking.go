package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference" gorm:"uniqueIndex"`

	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerEmail string `json:"customer_email,omitempty"`

	VehicleID   int64       `json:"vehicle_id" validate:"required" gorm:"index:idx_bookings_slot"`
	VehicleType VehicleType `json:"vehicle_type"`
	VehicleName string      `json:"vehicle_name"`

	// Date is the rental day (2006-01-02), TimeSlot the grid start (15:04).
	Date            string `json:"date" validate:"required" gorm:"index:idx_bookings_slot"`
	TimeSlot        string `json:"time_slot" validate:"required" gorm:"index:idx_bookings_slot"`
	DurationMinutes int    `json:"duration_minutes" validate:"required"`

	TotalPrice          int64  `json:"total_price"`
	TotalPriceFormatted string `json:"total_price_formatted"`

	Status         BookingStatus `json:"status"`
	SpecialRequest string        `json:"special_request,omitempty" gorm:"type:text"`
	UserID         *int64        `json:"user_id,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// Active reports whether the booking still occupies its slot.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
