package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"beachride/internal/domain"
)

// Link builds a wa.me deep link that opens a chat with the given number
// pre-filled with text. The number must be digits only with country code.
func Link(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// BookingLink renders the confirmation message for a single booking.
func BookingLink(number string, b *domain.Booking) string {
	return Link(number, bookingMessage(b))
}

// CheckoutLink renders one combined message for a multi-booking checkout.
func CheckoutLink(number string, bookings []*domain.Booking, totalFormatted string) string {
	var sb strings.Builder
	sb.WriteString("Hi! I just placed a booking:\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "\n- %s on %s at %s (%d min), ref %s", b.VehicleName, b.Date, b.TimeSlot, b.DurationMinutes, b.Reference)
	}
	fmt.Fprintf(&sb, "\n\nTotal: %s\nName: %s\nPhone: %s", totalFormatted, bookings[0].CustomerName, bookings[0].CustomerPhone)
	return Link(number, sb.String())
}

func bookingMessage(b *domain.Booking) string {
	var sb strings.Builder
	sb.WriteString("Hi! I just placed a booking:\n")
	fmt.Fprintf(&sb, "\nName: %s", b.CustomerName)
	fmt.Fprintf(&sb, "\nPhone: %s", b.CustomerPhone)
	fmt.Fprintf(&sb, "\nVehicle: %s", b.VehicleName)
	fmt.Fprintf(&sb, "\nDate: %s", b.Date)
	fmt.Fprintf(&sb, "\nTime: %s", b.TimeSlot)
	fmt.Fprintf(&sb, "\nDuration: %d minutes", b.DurationMinutes)
	fmt.Fprintf(&sb, "\nTotal: %s", b.TotalPriceFormatted)
	if b.SpecialRequest != "" {
		fmt.Fprintf(&sb, "\nRequest: %s", b.SpecialRequest)
	}
	fmt.Fprintf(&sb, "\nReference: %s", b.Reference)
	return sb.String()
}
