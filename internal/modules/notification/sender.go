package notification

import (
	"context"
	"log"
	"time"

	"beachride/internal/domain"
)

const RoutingKeyBookingCreated = "booking.created"

type bookingCreatedEvent struct {
	Reference       string `json:"reference"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	VehicleName     string `json:"vehicle_name"`
	VehicleType     string `json:"vehicle_type"`
	Date            string `json:"date"`
	TimeSlot        string `json:"time_slot"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalPrice      int64  `json:"total_price"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

type eventPublisher interface {
	Publish(routingKey string, payload any) error
}

// AMQPSender forwards booking events to the message broker.
type AMQPSender struct {
	publisher eventPublisher
}

func NewAMQPSender(publisher eventPublisher) *AMQPSender {
	return &AMQPSender{publisher: publisher}
}

func (s *AMQPSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	return s.publisher.Publish(RoutingKeyBookingCreated, bookingCreatedEvent{
		Reference:       b.Reference,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		VehicleName:     b.VehicleName,
		VehicleType:     string(b.VehicleType),
		Date:            b.Date,
		TimeSlot:        b.TimeSlot,
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
}

// LogSender is the no-broker fallback used in development and tests.
type LogSender struct{}

func (LogSender) NotifyBookingCreated(_ context.Context, b *domain.Booking) error {
	log.Printf("notification: booking %s created for %s (%s %s %s)",
		b.Reference, b.CustomerName, b.VehicleName, b.Date, b.TimeSlot)
	return nil
}
