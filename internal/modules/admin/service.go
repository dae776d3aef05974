package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"beachride/internal/domain"
	"beachride/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	reviews  ReviewRepository
	photos   PhotoRepository
	uploader Uploader
	changes  ChangeNotifier
}

func NewService(bookings BookingRepository, reviews ReviewRepository, photos PhotoRepository, uploader Uploader, changes ChangeNotifier) *Service {
	return &Service{
		bookings: bookings,
		reviews:  reviews,
		photos:   photos,
		uploader: uploader,
		changes:  changes,
	}
}

// --- bookings moderation ---

func (s *Service) ListBookings(ctx context.Context, f repository.BookingFilters) (*BookingListResponse, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	items, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	out := make([]*domain.Booking, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return &BookingListResponse{Bookings: out, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// allowed booking transitions: pending -> confirmed, pending/confirmed -> cancelled.
func transitionAllowed(from, to domain.BookingStatus) bool {
	switch to {
	case domain.BookingConfirmed:
		return from == domain.BookingPending
	case domain.BookingCancelled:
		return from == domain.BookingPending || from == domain.BookingConfirmed
	}
	return false
}

func (s *Service) UpdateBookingStatus(ctx context.Context, id int64, req UpdateBookingStatusRequest) (*domain.Booking, error) {
	to := domain.BookingStatus(req.Status)
	if to != domain.BookingConfirmed && to != domain.BookingCancelled {
		return nil, fmt.Errorf("%w: status must be confirmed or cancelled", ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !transitionAllowed(b.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, b.Status, to)
	}

	if to == domain.BookingCancelled {
		err = s.bookings.CancelWithReason(ctx, id, req.Reason)
	} else {
		err = s.bookings.UpdateStatus(ctx, id, string(to))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	b.Status = to
	// Cancelling frees a slot, so availability watchers need a nudge.
	if to == domain.BookingCancelled && s.changes != nil {
		s.changes.BookingsChanged(b.VehicleID, b.Date)
	}
	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get booking: %w", err)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	if b.Active() && s.changes != nil {
		s.changes.BookingsChanged(b.VehicleID, b.Date)
	}
	return nil
}

func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	stats := &StatsResponse{}
	var err error
	if _, stats.TotalBookings, err = s.bookings.List(ctx, repository.BookingFilters{Limit: 1}); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if _, stats.PendingBookings, err = s.bookings.List(ctx, repository.BookingFilters{Status: string(domain.BookingPending), Limit: 1}); err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}
	if _, stats.ConfirmedBookings, err = s.bookings.List(ctx, repository.BookingFilters{Status: string(domain.BookingConfirmed), Limit: 1}); err != nil {
		return nil, fmt.Errorf("count confirmed bookings: %w", err)
	}
	if _, stats.PendingReviews, err = s.reviews.GetByStatus(ctx, string(domain.ReviewPending), 1, 0); err != nil {
		return nil, fmt.Errorf("count pending reviews: %w", err)
	}
	return stats, nil
}

// --- reviews moderation ---

func (s *Service) ListReviews(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error) {
	if status == "" {
		status = string(domain.ReviewPending)
	}
	rs := domain.ReviewStatus(status)
	if rs != domain.ReviewPending && rs != domain.ReviewApproved && rs != domain.ReviewRejected {
		return nil, 0, fmt.Errorf("%w: unknown review status %q", ErrValidation, status)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.GetByStatus(ctx, status, limit, offset)
}

func (s *Service) SetReviewStatus(ctx context.Context, id int64, status string) (*domain.Review, error) {
	rs := domain.ReviewStatus(status)
	if rs != domain.ReviewApproved && rs != domain.ReviewRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}
	rv, err := s.reviews.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update review status: %w", err)
	}
	return rv, nil
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// --- gallery moderation ---

func (s *Service) UploadPhoto(ctx context.Context, req CreatePhotoRequest, fileHeader *multipart.FileHeader) (*domain.VehiclePhoto, error) {
	vt := domain.VehicleType(req.VehicleType)
	if !vt.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, req.VehicleType)
	}

	url, err := s.uploader.Save(fileHeader)
	if err != nil {
		return nil, err
	}

	order, err := s.photos.NextDisplayOrder(ctx, vt)
	if err != nil {
		return nil, fmt.Errorf("next display order: %w", err)
	}

	photo := &domain.VehiclePhoto{
		VehicleType:  vt,
		ImageURL:     url,
		Caption:      req.Caption,
		DisplayOrder: order,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		log.Printf("gallery: photo row insert failed, file %s orphaned: %v", url, err)
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

func (s *Service) ReorderPhotos(ctx context.Context, vehicleType string, photoIDs []int64) ([]domain.VehiclePhoto, error) {
	vt := domain.VehicleType(vehicleType)
	if !vt.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, vehicleType)
	}
	if len(photoIDs) == 0 {
		return nil, fmt.Errorf("%w: photo_ids is empty", ErrValidation)
	}
	if err := s.photos.Reorder(ctx, vt, photoIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reorder photos: %w", err)
	}
	return s.photos.GetByType(ctx, vt)
}

func (s *Service) DeletePhoto(ctx context.Context, id int64) error {
	if err := s.photos.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
