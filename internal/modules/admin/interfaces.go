package admin

import (
	"context"
	"mime/multipart"

	"beachride/internal/domain"
	"beachride/internal/repository"
)

type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.VehiclePhoto) error
	GetByID(ctx context.Context, id int64) (*domain.VehiclePhoto, error)
	GetByType(ctx context.Context, vt domain.VehicleType) ([]domain.VehiclePhoto, error)
	NextDisplayOrder(ctx context.Context, vt domain.VehicleType) (int, error)
	Reorder(ctx context.Context, vt domain.VehicleType, orderedIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type Uploader interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
}

type ChangeNotifier interface {
	BookingsChanged(vehicleID int64, date string)
}
