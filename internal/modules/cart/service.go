package cart

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"beachride/internal/domain"
	"beachride/internal/modules/booking"
	"beachride/internal/pkg/validator"
	"beachride/internal/pkg/whatsapp"
	"beachride/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type BookingRepository interface {
	CreateBatchIfAvailable(ctx context.Context, bookings []*domain.Booking, unitsByVehicle map[int64]int) error
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
}

type ChangeNotifier interface {
	BookingsChanged(vehicleID int64, date string)
}

type Service struct {
	store    *Store
	vehicles VehicleRepository
	bookings BookingRepository
	notifs   NotificationSender
	changes  ChangeNotifier
	waNumber string
}

func NewService(
	store *Store,
	vehicles VehicleRepository,
	bookings BookingRepository,
	notifs NotificationSender,
	changes ChangeNotifier,
	waNumber string,
) *Service {
	return &Service{
		store:    store,
		vehicles: vehicles,
		bookings: bookings,
		notifs:   notifs,
		changes:  changes,
		waNumber: waNumber,
	}
}

func (s *Service) Get(ctx context.Context, token string) (*domain.Cart, error) {
	return s.store.Load(ctx, token)
}

// AddItem merges into an existing line for the same vehicle (quantity+1)
// or appends a new one. Returns the cart and its token, minting a token
// on first write.
func (s *Service) AddItem(ctx context.Context, token string, req AddItemRequest) (*domain.Cart, error) {
	duration := req.Duration
	if duration == 0 {
		duration = 30
	}
	if !booking.ValidDuration(duration) {
		return nil, ErrValidation
	}

	if token == "" {
		token = uuid.NewString()
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.Token = token

	for i := range cart.Items {
		if cart.Items[i].VehicleID == req.VehicleID {
			cart.Items[i].Quantity++
			if err := s.store.Save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if !vehicle.Active {
		return nil, ErrValidation
	}

	cart.Items = append(cart.Items, domain.CartItem{
		VehicleID:        vehicle.ID,
		VehicleName:      vehicle.Name,
		VehicleType:      vehicle.Type,
		PricePerHalfHour: vehicle.PricePerHalfHour,
		DurationMinutes:  duration,
		Quantity:         1,
	})

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) UpdateItem(ctx context.Context, token string, vehicleID int64, req UpdateItemRequest) (*domain.Cart, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].VehicleID == vehicleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	item := &cart.Items[idx]
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, ErrValidation
		}
		item.Quantity = *req.Quantity
	}
	if req.Duration != nil {
		if !booking.ValidDuration(*req.Duration) {
			return nil, ErrValidation
		}
		item.DurationMinutes = *req.Duration
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return nil, ErrValidation
		}
		item.Date = *req.Date
	}
	if req.TimeSlot != nil {
		if !booking.ValidSlot(*req.TimeSlot) {
			return nil, ErrValidation
		}
		item.TimeSlot = *req.TimeSlot
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, token string, vehicleID int64) (*domain.Cart, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	found := false
	for _, it := range cart.Items {
		if it.VehicleID == vehicleID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	cart.Items = items

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout turns every cart line into bookings: one insert per unit of
// quantity, all inside a single transaction; either every booking lands
// or none do. On success the cart is cleared.
func (s *Service) Checkout(ctx context.Context, token string, req CheckoutRequest) (*CheckoutResponse, error) {
	name := strings.TrimSpace(req.CustomerName)
	if len(name) < 2 || len(name) > 100 {
		return nil, ErrValidation
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if len(phone) < 8 || len(phone) > 20 {
		return nil, ErrValidation
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	unitsByVehicle := make(map[int64]int)
	var bookings []*domain.Booking
	for _, it := range cart.Items {
		if it.Date == "" || it.TimeSlot == "" {
			return nil, ErrSlotMissing
		}

		vehicle, err := s.vehicles.GetByID(ctx, it.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrValidation
			}
			return nil, err
		}
		unitsByVehicle[vehicle.ID] = vehicle.Units

		// Price from the current catalog, not the snapshot, so a stale
		// cart cannot lock in an old rate.
		total := booking.TotalPrice(vehicle.PricePerHalfHour, it.DurationMinutes)

		for i := 0; i < it.Quantity; i++ {
			bookings = append(bookings, &domain.Booking{
				Reference:           uuid.NewString(),
				CustomerName:        name,
				CustomerPhone:       phone,
				CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
				VehicleID:           vehicle.ID,
				VehicleType:         vehicle.Type,
				VehicleName:         vehicle.Name,
				Date:                it.Date,
				TimeSlot:            it.TimeSlot,
				DurationMinutes:     it.DurationMinutes,
				TotalPrice:          total,
				TotalPriceFormatted: booking.FormatIDR(total),
				Status:              domain.BookingPending,
				SpecialRequest:      strings.TrimSpace(req.SpecialRequest),
			})
		}
	}

	// Cart lines were written by earlier requests, so this payload's
	// binding never saw them; re-check the assembled bookings before
	// they hit the database.
	for _, b := range bookings {
		if errs := validator.Validate(b); errs != nil {
			return nil, ErrValidation
		}
	}

	if err := s.bookings.CreateBatchIfAvailable(ctx, bookings, unitsByVehicle); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	if err := s.store.Clear(ctx, token); err != nil {
		log.Printf("cart clear failed token=%s: %v", token, err)
	}

	var grandTotal int64
	references := make([]string, 0, len(bookings))
	notified := make(map[string]bool)
	for _, b := range bookings {
		grandTotal += b.TotalPrice
		references = append(references, b.Reference)

		if s.changes != nil {
			key := b.Date + "/" + strconv.FormatInt(b.VehicleID, 10)
			if !notified[key] {
				s.changes.BookingsChanged(b.VehicleID, b.Date)
				notified[key] = true
			}
		}
		if s.notifs != nil {
			if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
				log.Printf("checkout notification failed reference=%s: %v", b.Reference, err)
			}
		}
	}

	totalFormatted := booking.FormatIDR(grandTotal)
	return &CheckoutResponse{
		References:          references,
		TotalPrice:          grandTotal,
		TotalPriceFormatted: totalFormatted,
		WhatsAppLink:        whatsapp.CheckoutLink(s.waNumber, bookings, totalFormatted),
	}, nil
}
