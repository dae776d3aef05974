package domain

import "time"

// CartItem is one line of a cart. A cart holds at most one line per
// vehicle; adding an already-present vehicle bumps Quantity instead.
type CartItem struct {
	VehicleID        int64       `json:"vehicle_id"`
	VehicleName      string      `json:"vehicle_name"`
	VehicleType      VehicleType `json:"vehicle_type"`
	PricePerHalfHour int64       `json:"price_per_half_hour"`
	DurationMinutes  int         `json:"duration_minutes"`
	Quantity         int         `json:"quantity"`
	Date             string      `json:"date,omitempty"`
	TimeSlot         string      `json:"time_slot,omitempty"`
}

// Subtotal is the line price: base x duration multiplier x quantity.
func (i CartItem) Subtotal() int64 {
	return i.PricePerHalfHour * int64(i.DurationMinutes/30) * int64(i.Quantity)
}

type Cart struct {
	Token     string     `json:"token"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartSession is the persisted form of a cart: the serialized cart body
// keyed by its token. The cart store only sees the key-value shape.
type CartSession struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	Payload   []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}
