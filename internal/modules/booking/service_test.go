package booking

import (
	"context"
	"testing"
	"time"

	"beachride/internal/domain"
	"beachride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking, units int) error {
	args := m.Called(ctx, b, units)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetActiveSlotCounts(ctx context.Context, vehicleID int64, date string) (map[string]int, error) {
	args := m.Called(ctx, vehicleID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockBookingRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               1,
		Slug:             "atv-premium",
		Name:             "ATV Premium",
		Type:             domain.VehicleATV,
		PricePerHalfHour: 30000,
		Units:            1,
		Active:           true,
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "+62 812-3456-7890",
		VehicleID:     1,
		Date:          futureDate(),
		TimeSlot:      "10:00",
		Duration:      120,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(), nil)
	bookings.On("CreateIfAvailable", mock.Anything, mock.Anything, 1).Return(nil)

	b, link, err := svc.CreateBooking(context.Background(), validRequest(), nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(120000), b.TotalPrice)
	assert.Equal(t, "Rp 120.000", b.TotalPriceFormatted)
	assert.Contains(t, link, "https://wa.me/6281234567890?text=")
	bookings.AssertExpectations(t)
}

// A booking for the current local day must pass the past-date check; the
// comparison is against the server's day, not UTC's, so an evening
// booking east of Greenwich is not rejected as "yesterday".
func TestCreateBooking_TodayIsBookable(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(), nil)
	bookings.On("CreateIfAvailable", mock.Anything, mock.Anything, 1).Return(nil)

	req := validRequest()
	req.Date = time.Now().Format("2006-01-02")

	_, _, err := svc.CreateBooking(context.Background(), req, nil)
	assert.NoError(t, err)
}

func TestCreateBooking_ValidatesBeforeRepositoryCalls(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"short name", func(r *CreateBookingRequest) { r.CustomerName = "B" }},
		{"short phone", func(r *CreateBookingRequest) { r.CustomerPhone = "12345" }},
		{"bad phone chars", func(r *CreateBookingRequest) { r.CustomerPhone = "0812abc34567" }},
		{"bad date", func(r *CreateBookingRequest) { r.Date = "07-08-2026" }},
		{"past date", func(r *CreateBookingRequest) { r.Date = "2020-01-01" }},
		{"off-grid slot", func(r *CreateBookingRequest) { r.TimeSlot = "10:15" }},
		{"before opening", func(r *CreateBookingRequest) { r.TimeSlot = "08:30" }},
		{"after closing", func(r *CreateBookingRequest) { r.TimeSlot = "18:00" }},
		{"odd duration", func(r *CreateBookingRequest) { r.Duration = 45 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, _, err := svc.CreateBooking(context.Background(), req, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// None of the invalid requests may touch the repositories.
	vehicles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "CreateIfAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(), nil)
	bookings.On("CreateIfAvailable", mock.Anything, mock.Anything, 1).Return(repository.ErrSlotTaken)

	_, _, err := svc.CreateBooking(context.Background(), validRequest(), nil)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateBooking_UnknownVehicle(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.CreateBooking(context.Background(), validRequest(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_InactiveVehicle(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	v := testVehicle()
	v.Active = false
	vehicles.On("GetByID", mock.Anything, int64(1)).Return(v, nil)

	_, _, err := svc.CreateBooking(context.Background(), validRequest(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAvailability_FullGrid(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	date := futureDate()
	vehicles.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(), nil)
	bookings.On("GetActiveSlotCounts", mock.Anything, int64(1), date).Return(map[string]int{
		"10:00": 1, // at capacity for a 1-unit vehicle
	}, nil)

	res, err := svc.GetAvailability(context.Background(), 1, date)

	assert.NoError(t, err)
	assert.Len(t, res.Slots, 18)
	assert.Equal(t, "09:00", res.Slots[0].Time)
	assert.Equal(t, "17:30", res.Slots[17].Time)

	for _, slot := range res.Slots {
		if slot.Time == "10:00" {
			assert.False(t, slot.Available, "booked slot must show unavailable")
		} else {
			assert.True(t, slot.Available, "slot %s should be free", slot.Time)
		}
	}
}

func TestGetAvailability_CapacityAboveOne(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	v := testVehicle()
	v.Units = 3
	date := futureDate()
	vehicles.On("GetByID", mock.Anything, int64(1)).Return(v, nil)
	bookings.On("GetActiveSlotCounts", mock.Anything, int64(1), date).Return(map[string]int{
		"09:00": 2,
		"09:30": 3,
	}, nil)

	res, err := svc.GetAvailability(context.Background(), 1, date)

	assert.NoError(t, err)
	assert.True(t, res.Slots[0].Available, "2 of 3 units taken leaves room")
	assert.False(t, res.Slots[1].Available, "3 of 3 units taken is full")
}

func TestGetByReference_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	vehicles := new(MockVehicleRepository)
	svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

	bookings.On("GetByReference", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByReference(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOwn(t *testing.T) {
	userID := int64(7)
	otherUser := int64(8)

	t.Run("owner cancels pending", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		vehicles := new(MockVehicleRepository)
		svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

		b := &domain.Booking{ID: 5, UserID: &userID, Status: domain.BookingPending, VehicleID: 1, Date: futureDate()}
		cancelled := &domain.Booking{ID: 5, UserID: &userID, Status: domain.BookingCancelled}
		bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil).Once()
		bookings.On("CancelWithReason", mock.Anything, int64(5), "change of plans").Return(nil)
		bookings.On("GetByID", mock.Anything, int64(5)).Return(cancelled, nil).Once()

		got, err := svc.CancelOwn(context.Background(), userID, 5, "change of plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, got.Status)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		vehicles := new(MockVehicleRepository)
		svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

		b := &domain.Booking{ID: 5, UserID: &otherUser, Status: domain.BookingPending}
		bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

		_, err := svc.CancelOwn(context.Background(), userID, 5, "x")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("confirmed cannot be self-cancelled", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		vehicles := new(MockVehicleRepository)
		svc := NewService(bookings, vehicles, nil, nil, "6281234567890")

		b := &domain.Booking{ID: 5, UserID: &userID, Status: domain.BookingConfirmed}
		bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

		_, err := svc.CancelOwn(context.Background(), userID, 5, "x")
		assert.ErrorIs(t, err, ErrBadTransition)
	})
}
