package cart

import (
	"context"
	"testing"
	"time"

	"beachride/internal/domain"
	"beachride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBatchIfAvailable(ctx context.Context, bookings []*domain.Booking, unitsByVehicle map[int64]int) error {
	args := m.Called(ctx, bookings, unitsByVehicle)
	return args.Error(0)
}

func jetSki() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               1,
		Name:             "Jet Ski Standard",
		Type:             domain.VehicleJetSki,
		PricePerHalfHour: 250000,
		Units:            2,
		Active:           true,
	}
}

func newTestService(vehicles *MockVehicleRepository, bookings *MockBookingRepository) *Service {
	return NewService(NewStore(NewMemoryKV()), vehicles, bookings, nil, nil, "6281234567890")
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 3).Format("2006-01-02")
}

func TestAddItem_MintsTokenAndSnapshotsVehicle(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)

	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, cart.Token)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Jet Ski Standard", cart.Items[0].VehicleName)
	assert.Equal(t, int64(250000), cart.Items[0].PricePerHalfHour)
	assert.Equal(t, 30, cart.Items[0].DurationMinutes, "default duration is one slot")
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItem_SameVehicleIncrementsQuantity(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil).Once()

	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	cart, err = svc.AddItem(context.Background(), cart.Token, AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	// Merge path must not refetch the vehicle.
	vehicles.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCartTotals(t *testing.T) {
	cart := &domain.Cart{Items: []domain.CartItem{
		{PricePerHalfHour: 250000, DurationMinutes: 60, Quantity: 2}, // 250k x2 x2
		{PricePerHalfHour: 150000, DurationMinutes: 30, Quantity: 1}, // 150k
	}}
	assert.Equal(t, int64(1000000), cart.Items[0].Subtotal())
	assert.Equal(t, int64(150000), cart.Items[1].Subtotal())
	assert.Equal(t, int64(1150000), cart.Total())
}

func TestUpdateItem(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)
	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	date := futureDate()
	slot := "14:30"
	qty := 3
	cart, err = svc.UpdateItem(context.Background(), cart.Token, 1, UpdateItemRequest{
		Quantity: &qty,
		Date:     &date,
		TimeSlot: &slot,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, date, cart.Items[0].Date)
	assert.Equal(t, "14:30", cart.Items[0].TimeSlot)

	badSlot := "14:15"
	_, err = svc.UpdateItem(context.Background(), cart.Token, 1, UpdateItemRequest{TimeSlot: &badSlot})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateItem(context.Background(), cart.Token, 99, UpdateItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)
	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	cart, err = svc.RemoveItem(context.Background(), cart.Token, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(context.Background(), cart.Token, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCheckout_CreatesOneBookingPerUnit(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)

	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1, Duration: 60})
	require.NoError(t, err)
	cart, err = svc.AddItem(context.Background(), cart.Token, AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	date := futureDate()
	slot := "10:00"
	_, err = svc.UpdateItem(context.Background(), cart.Token, 1, UpdateItemRequest{Date: &date, TimeSlot: &slot})
	require.NoError(t, err)

	var captured []*domain.Booking
	bookings.On("CreateBatchIfAvailable", mock.Anything, mock.Anything, map[int64]int{1: 2}).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*domain.Booking)
		}).
		Return(nil)

	res, err := svc.Checkout(context.Background(), cart.Token, CheckoutRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
	})
	require.NoError(t, err)

	// quantity 2 means two bookings with distinct references
	require.Len(t, captured, 2)
	assert.NotEqual(t, captured[0].Reference, captured[1].Reference)
	assert.Len(t, res.References, 2)
	assert.Equal(t, int64(2*2*250000), res.TotalPrice)
	assert.Equal(t, "Rp 1.000.000", res.TotalPriceFormatted)
	assert.Contains(t, res.WhatsAppLink, "https://wa.me/6281234567890?text=")

	// success clears the cart
	after, err := svc.Get(context.Background(), cart.Token)
	require.NoError(t, err)
	assert.Empty(t, after.Items)
}

func TestCheckout_RequiresSlotOnEveryLine(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)
	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), cart.Token, CheckoutRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
	})
	assert.ErrorIs(t, err, ErrSlotMissing)
	bookings.AssertNotCalled(t, "CreateBatchIfAvailable", mock.Anything, mock.Anything, mock.Anything)
}

// A line written by an earlier request can be malformed in ways the
// checkout payload's binding never sees; the assembled bookings are
// re-validated before any insert.
func TestCheckout_RejectsMalformedStoredLine(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	store := NewStore(NewMemoryKV())
	svc := NewService(store, vehicles, bookings, nil, nil, "6281234567890")

	require.NoError(t, store.Save(context.Background(), &domain.Cart{
		Token: "tok",
		Items: []domain.CartItem{{
			VehicleID: 1,
			Quantity:  1,
			Date:      futureDate(),
			TimeSlot:  "10:00",
			// DurationMinutes left zero, as a stale client could send.
		}},
	}))
	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)

	_, err := svc.Checkout(context.Background(), "tok", CheckoutRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "+62 812-3456-7890",
	})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "CreateBatchIfAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	_, err := svc.Checkout(context.Background(), "no-such-token", CheckoutRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_ConflictKeepsCart(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockBookingRepository)
	svc := newTestService(vehicles, bookings)

	vehicles.On("GetByID", mock.Anything, int64(1)).Return(jetSki(), nil)
	cart, err := svc.AddItem(context.Background(), "", AddItemRequest{VehicleID: 1})
	require.NoError(t, err)

	date := futureDate()
	slot := "10:00"
	_, err = svc.UpdateItem(context.Background(), cart.Token, 1, UpdateItemRequest{Date: &date, TimeSlot: &slot})
	require.NoError(t, err)

	bookings.On("CreateBatchIfAvailable", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrSlotTaken)

	_, err = svc.Checkout(context.Background(), cart.Token, CheckoutRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
	})
	assert.ErrorIs(t, err, ErrNotAvailable)

	// failed checkout must not clear the cart
	after, err := svc.Get(context.Background(), cart.Token)
	require.NoError(t, err)
	assert.Len(t, after.Items, 1)
}
