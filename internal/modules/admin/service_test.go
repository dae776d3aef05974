package admin

import (
	"context"
	"mime/multipart"
	"testing"

	"beachride/internal/domain"
	"beachride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepo) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) GetByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Review, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, p *domain.VehiclePhoto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepo) GetByID(ctx context.Context, id int64) (*domain.VehiclePhoto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehiclePhoto), args.Error(1)
}

func (m *MockPhotoRepo) GetByType(ctx context.Context, vt domain.VehicleType) ([]domain.VehiclePhoto, error) {
	args := m.Called(ctx, vt)
	return args.Get(0).([]domain.VehiclePhoto), args.Error(1)
}

func (m *MockPhotoRepo) NextDisplayOrder(ctx context.Context, vt domain.VehicleType) (int, error) {
	args := m.Called(ctx, vt)
	return args.Int(0), args.Error(1)
}

func (m *MockPhotoRepo) Reorder(ctx context.Context, vt domain.VehicleType, orderedIDs []int64) error {
	args := m.Called(ctx, vt, orderedIDs)
	return args.Error(0)
}

func (m *MockPhotoRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Save(fileHeader *multipart.FileHeader) (string, error) {
	args := m.Called(fileHeader)
	return args.String(0), args.Error(1)
}

type recordingNotifier struct {
	calls []string
}

func (r *recordingNotifier) BookingsChanged(vehicleID int64, date string) {
	r.calls = append(r.calls, date)
}

func newAdminService(b *MockBookingRepo, rv *MockReviewRepo, p *MockPhotoRepo, u *MockUploader, n ChangeNotifier) *Service {
	return NewService(b, rv, p, u, n)
}

func TestUpdateBookingStatus_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"pending to confirmed", domain.BookingPending, "confirmed", nil},
		{"pending to cancelled", domain.BookingPending, "cancelled", nil},
		{"confirmed to cancelled", domain.BookingConfirmed, "cancelled", nil},
		{"confirmed to confirmed", domain.BookingConfirmed, "confirmed", ErrBadTransition},
		{"cancelled to confirmed", domain.BookingCancelled, "confirmed", ErrBadTransition},
		{"back to pending", domain.BookingConfirmed, "pending", ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := new(MockBookingRepo)
			notifier := &recordingNotifier{}
			svc := newAdminService(bookings, new(MockReviewRepo), new(MockPhotoRepo), new(MockUploader), notifier)

			bookings.On("GetByID", mock.Anything, int64(1)).
				Return(&domain.Booking{ID: 1, Status: tc.from, VehicleID: 2, Date: "2026-09-10"}, nil)
			bookings.On("UpdateStatus", mock.Anything, int64(1), "confirmed").Return(nil)
			bookings.On("CancelWithReason", mock.Anything, int64(1), mock.Anything).Return(nil)

			b, err := svc.UpdateBookingStatus(context.Background(), 1, UpdateBookingStatusRequest{Status: tc.to})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tc.to), b.Status)

			if tc.to == "cancelled" {
				assert.Len(t, notifier.calls, 1, "cancelling frees a slot")
			} else {
				assert.Empty(t, notifier.calls)
			}
		})
	}
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	svc := newAdminService(bookings, new(MockReviewRepo), new(MockPhotoRepo), new(MockUploader), nil)

	bookings.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateBookingStatus(context.Background(), 99, UpdateBookingStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBooking_NotifiesOnlyWhenActive(t *testing.T) {
	t.Run("active booking", func(t *testing.T) {
		bookings := new(MockBookingRepo)
		notifier := &recordingNotifier{}
		svc := newAdminService(bookings, new(MockReviewRepo), new(MockPhotoRepo), new(MockUploader), notifier)

		bookings.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Booking{ID: 1, Status: domain.BookingConfirmed, VehicleID: 2, Date: "2026-09-10"}, nil)
		bookings.On("Delete", mock.Anything, int64(1)).Return(nil)

		require.NoError(t, svc.DeleteBooking(context.Background(), 1))
		assert.Len(t, notifier.calls, 1)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		bookings := new(MockBookingRepo)
		notifier := &recordingNotifier{}
		svc := newAdminService(bookings, new(MockReviewRepo), new(MockPhotoRepo), new(MockUploader), notifier)

		bookings.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Booking{ID: 1, Status: domain.BookingCancelled}, nil)
		bookings.On("Delete", mock.Anything, int64(1)).Return(nil)

		require.NoError(t, svc.DeleteBooking(context.Background(), 1))
		assert.Empty(t, notifier.calls, "deleting an already-cancelled booking changes nothing")
	})
}

func TestSetReviewStatus(t *testing.T) {
	reviews := new(MockReviewRepo)
	svc := newAdminService(new(MockBookingRepo), reviews, new(MockPhotoRepo), new(MockUploader), nil)

	reviews.On("UpdateStatus", mock.Anything, int64(3), "approved").
		Return(&domain.Review{ID: 3, Status: domain.ReviewApproved}, nil)

	rv, err := svc.SetReviewStatus(context.Background(), 3, "approved")
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewApproved, rv.Status)

	_, err = svc.SetReviewStatus(context.Background(), 3, "pending")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReorderPhotos_RejectsUnknownType(t *testing.T) {
	photos := new(MockPhotoRepo)
	svc := newAdminService(new(MockBookingRepo), new(MockReviewRepo), photos, new(MockUploader), nil)

	_, err := svc.ReorderPhotos(context.Background(), "hovercraft", []int64{1, 2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ReorderPhotos(context.Background(), "atv", nil)
	assert.ErrorIs(t, err, ErrValidation)
}
