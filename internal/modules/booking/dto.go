package booking

type CreateBookingRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	CustomerEmail  string `json:"customer_email"`
	VehicleID      int64  `json:"vehicle_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	TimeSlot       string `json:"time_slot" binding:"required"`
	Duration       int    `json:"duration_minutes" binding:"required"`
	SpecialRequest string `json:"special_request"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	VehicleID int64        `json:"vehicle_id"`
	Date      string       `json:"date"`
	Slots     []SlotStatus `json:"slots"`
}

type BookingCreatedResponse struct {
	Reference           string `json:"reference"`
	Status              string `json:"status"`
	TotalPrice          int64  `json:"total_price"`
	TotalPriceFormatted string `json:"total_price_formatted"`
	// WhatsAppLink opens the business chat pre-filled with the
	// confirmation message. The client opens it after showing the
	// confirmation view.
	WhatsAppLink string `json:"whatsapp_link"`
}
