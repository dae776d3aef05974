package domain

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type Review struct {
	ID          int64        `json:"id"`
	BookingID   int64        `json:"booking_id" gorm:"uniqueIndex"`
	VehicleType VehicleType  `json:"vehicle_type"`
	Name        string       `json:"name"`
	Rating      int          `json:"rating"`
	Comment     string       `json:"comment,omitempty" gorm:"type:text"`
	Status      ReviewStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
