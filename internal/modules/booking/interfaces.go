package booking

import (
	"context"
	"time"

	"beachride/internal/domain"
	"beachride/internal/repository"
)

// BookingRepository is the slice of the bookings store this module uses.
type BookingRepository interface {
	CreateIfAvailable(ctx context.Context, b *domain.Booking, units int) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetActiveSlotCounts(ctx context.Context, vehicleID int64, date string) (map[string]int, error)
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
	CountStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// NotificationSender dispatches the best-effort side effects of a new
// booking. Failures are logged, never propagated.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
}

// ChangeNotifier lets availability watchers know a (vehicle, date) key
// changed so they re-fetch the grid.
type ChangeNotifier interface {
	BookingsChanged(vehicleID int64, date string)
}
