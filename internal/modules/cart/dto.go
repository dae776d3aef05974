package cart

type AddItemRequest struct {
	VehicleID int64 `json:"vehicle_id" binding:"required"`
	Duration  int   `json:"duration_minutes"`
}

// UpdateItemRequest patches one cart line; nil fields stay unchanged.
type UpdateItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Duration *int    `json:"duration_minutes,omitempty"`
	Date     *string `json:"date,omitempty"`
	TimeSlot *string `json:"time_slot,omitempty"`
}

type CheckoutRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	CustomerEmail  string `json:"customer_email"`
	SpecialRequest string `json:"special_request"`
}

type CheckoutResponse struct {
	References          []string `json:"references"`
	TotalPrice          int64    `json:"total_price"`
	TotalPriceFormatted string   `json:"total_price_formatted"`
	WhatsAppLink        string   `json:"whatsapp_link"`
}
