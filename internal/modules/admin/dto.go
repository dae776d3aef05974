package admin

import "beachride/internal/domain"

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type UpdateReviewStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreatePhotoRequest struct {
	VehicleType string `form:"vehicle_type" binding:"required"`
	Caption     string `form:"caption"`
}

type ReorderPhotosRequest struct {
	PhotoIDs []int64 `json:"photo_ids" binding:"required,min=1"`
}

type BookingListResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type StatsResponse struct {
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	PendingReviews    int64 `json:"pending_reviews"`
}
