package review

import (
	"context"
	"errors"
	"strings"

	"beachride/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BookingGate resolves the booking a review attaches to.
type BookingGate interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	GetApproved(ctx context.Context, vehicleType string, limit, offset int) ([]domain.Review, error)
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
}

func NewService(reviews ReviewRepository, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create files a review against a booking. New reviews always enter the
// moderation queue as pending; they never show publicly until approved.
func (s *Service) Create(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	b, err := s.bookings.GetByReference(ctx, req.BookingReference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Cheap pre-check; the unique index on booking_id is the authority.
	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		BookingID:   b.ID,
		VehicleType: b.VehicleType,
		Name:        name,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
		Status:      domain.ReviewPending,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

// GetApproved lists publicly visible reviews, newest first.
func (s *Service) GetApproved(ctx context.Context, vehicleType string, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if vehicleType != "" && !domain.VehicleType(vehicleType).Valid() {
		return nil, ErrInvalidRequest
	}
	return s.reviews.GetApproved(ctx, vehicleType, limit, offset)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint")
}
