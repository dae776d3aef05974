package fleet

import (
	"context"
	"errors"

	"beachride/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not_found")

type VehicleRepository interface {
	GetActive(ctx context.Context) ([]domain.Vehicle, error)
	GetActiveByType(ctx context.Context, vt domain.VehicleType) ([]domain.Vehicle, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error)
}

type PhotoRepository interface {
	GetByType(ctx context.Context, vt domain.VehicleType) ([]domain.VehiclePhoto, error)
}

type Service struct {
	vehicles VehicleRepository
	photos   PhotoRepository
}

func NewService(vehicles VehicleRepository, photos PhotoRepository) *Service {
	return &Service{vehicles: vehicles, photos: photos}
}

func (s *Service) ListVehicles(ctx context.Context, vehicleType string) ([]domain.Vehicle, error) {
	if vehicleType == "" {
		return s.vehicles.GetActive(ctx)
	}
	vt := domain.VehicleType(vehicleType)
	if !vt.Valid() {
		return nil, ErrNotFound
	}
	return s.vehicles.GetActiveByType(ctx, vt)
}

func (s *Service) GetVehicle(ctx context.Context, slug string) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// GetGallery returns the curated photo strip for a vehicle type, in
// display order.
func (s *Service) GetGallery(ctx context.Context, vehicleType string) ([]domain.VehiclePhoto, error) {
	vt := domain.VehicleType(vehicleType)
	if !vt.Valid() {
		return nil, ErrNotFound
	}
	return s.photos.GetByType(ctx, vt)
}
