package review

type CreateReviewRequest struct {
	BookingReference string `json:"booking_reference" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Rating           int    `json:"rating" binding:"required"`
	Comment          string `json:"comment"`
}
