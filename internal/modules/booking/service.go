package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"beachride/internal/domain"
	"beachride/internal/pkg/whatsapp"
	"beachride/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ValidationError carries the first violated rule's message to the
// client. errors.Is(err, ErrValidation) matches it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

type Service struct {
	bookings BookingRepository
	vehicles VehicleRepository
	notifs   NotificationSender
	changes  ChangeNotifier
	waNumber string
}

func NewService(
	bookings BookingRepository,
	vehicles VehicleRepository,
	notifs NotificationSender,
	changes ChangeNotifier,
	waNumber string,
) *Service {
	return &Service{
		bookings: bookings,
		vehicles: vehicles,
		notifs:   notifs,
		changes:  changes,
		waNumber: waNumber,
	}
}

// validateCreate enforces the form rules before any repository call.
func validateCreate(req CreateBookingRequest) error {
	name := strings.TrimSpace(req.CustomerName)
	if len(name) < 2 {
		return validationErr("Name must be at least 2 characters")
	}
	if len(name) > 100 {
		return validationErr("Name must be at most 100 characters")
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if len(phone) < 8 || len(phone) > 20 {
		return validationErr("Phone number must be 8-20 characters")
	}
	for _, r := range phone {
		if (r < '0' || r > '9') && r != '+' && r != ' ' && r != '-' {
			return validationErr("Phone number may only contain digits, spaces, + and -")
		}
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return validationErr("Date must be YYYY-MM-DD")
	}
	// Lexicographic compare works for this format and keeps "today" in
	// the server's local day rather than UTC's.
	if req.Date < time.Now().Format("2006-01-02") {
		return validationErr("Date must not be in the past")
	}

	if !ValidSlot(req.TimeSlot) {
		return validationErr("Time must be a half-hour slot between 09:00 and 17:30")
	}
	if !ValidDuration(req.Duration) {
		return validationErr("Duration is not offered")
	}
	return nil
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest, userID *int64) (*domain.Booking, string, error) {
	if err := validateCreate(req); err != nil {
		return nil, "", err
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", validationErr("Unknown vehicle")
		}
		return nil, "", err
	}
	if !vehicle.Active {
		return nil, "", validationErr("Vehicle is not currently rentable")
	}

	total := TotalPrice(vehicle.PricePerHalfHour, req.Duration)

	b := &domain.Booking{
		Reference:           uuid.NewString(),
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		VehicleID:           vehicle.ID,
		VehicleType:         vehicle.Type,
		VehicleName:         vehicle.Name,
		Date:                req.Date,
		TimeSlot:            req.TimeSlot,
		DurationMinutes:     req.Duration,
		TotalPrice:          total,
		TotalPriceFormatted: FormatIDR(total),
		Status:              domain.BookingPending,
		SpecialRequest:      strings.TrimSpace(req.SpecialRequest),
		UserID:              userID,
	}

	if err := s.bookings.CreateIfAvailable(ctx, b, vehicle.Units); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, "", ErrNotAvailable
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, "", ErrNotAvailable
		}
		return nil, "", err
	}

	s.afterMutation(ctx, b)

	return b, whatsapp.BookingLink(s.waNumber, b), nil
}

// afterMutation runs the side effects that must never fail the write:
// availability watchers and the notification dispatch.
func (s *Service) afterMutation(ctx context.Context, b *domain.Booking) {
	if s.changes != nil {
		s.changes.BookingsChanged(b.VehicleID, b.Date)
	}
	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
			log.Printf("booking notification failed reference=%s: %v", b.Reference, err)
		}
	}
}

// GetAvailability renders the fixed slot grid for one vehicle and day.
// A slot is available while active bookings are below the vehicle's
// unit count; cancelled bookings never occupy a slot.
func (s *Service) GetAvailability(ctx context.Context, vehicleID int64, date string) (*AvailabilityResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, validationErr("Date must be YYYY-MM-DD")
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("Unknown vehicle")
		}
		return nil, err
	}

	counts, err := s.bookings.GetActiveSlotCounts(ctx, vehicleID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]SlotStatus, 0, SlotsPerDay)
	for _, t := range SlotTimes() {
		slots = append(slots, SlotStatus{
			Time:      t,
			Available: counts[t] < vehicle.Units,
		})
	}

	return &AvailabilityResponse{
		VehicleID: vehicleID,
		Date:      date,
		Slots:     slots,
	}, nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	b, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetUserBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.GetByUser(ctx, userID, limit, offset)
}

// CancelOwn lets a signed-in customer cancel their own pending booking.
func (s *Service) CancelOwn(ctx context.Context, userID, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID == nil || *b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return nil, ErrBadTransition
	}

	if err := s.bookings.CancelWithReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}

	if s.changes != nil {
		s.changes.BookingsChanged(b.VehicleID, b.Date)
	}

	return s.bookings.GetByID(ctx, bookingID)
}
