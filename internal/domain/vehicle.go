package domain

import "time"

type VehicleType string

const (
	VehicleJetSki VehicleType = "jet_ski"
	VehicleATV    VehicleType = "atv"
	VehicleUTV    VehicleType = "utv"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleJetSki, VehicleATV, VehicleUTV:
		return true
	}
	return false
}

type Vehicle struct {
	ID          int64       `json:"id"`
	Slug        string      `json:"slug" gorm:"uniqueIndex"`
	Name        string      `json:"name"`
	Type        VehicleType `json:"type"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	// Price for one 30-minute slot, in whole rupiah.
	PricePerHalfHour int64     `json:"price_per_half_hour"`
	Units            int       `json:"units"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type VehiclePhoto struct {
	ID           int64       `json:"id"`
	VehicleType  VehicleType `json:"vehicle_type"`
	ImageURL     string      `json:"image_url"`
	Caption      string      `json:"caption,omitempty"`
	DisplayOrder int         `json:"display_order"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
