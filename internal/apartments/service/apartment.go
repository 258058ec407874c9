package service

import (
	"context"

	"towerdesk/internal/apartments/cache"
	"towerdesk/internal/apartments/repository"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

type ApartmentService interface {
	List(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error)
}

type apartmentService struct {
	repo  repository.ApartmentRepository
	cache *cache.ListingCache
	cfg   *config.Config
}

func NewApartmentService(repo repository.ApartmentRepository, listingCache *cache.ListingCache, cfg *config.Config) ApartmentService {
	return &apartmentService{
		repo:  repo,
		cache: listingCache,
		cfg:   cfg,
	}
}

// List serves one fixed-size page of bookable apartments in the rent
// range. Pages are cached briefly; any cache failure falls through to
// the store.
func (s *apartmentService) List(ctx context.Context, page, minRent, maxRent int) (*model.ApartmentPage, error) {
	if page < 1 {
		page = 1
	}
	if minRent < 0 {
		minRent = 0
	}

	if cached, ok := s.cache.GetPage(ctx, page, minRent, maxRent); ok {
		return cached, nil
	}

	apartments, total, err := s.repo.FindAvailable(ctx, minRent, maxRent, page, config.ApartmentPageSize)
	if err != nil {
		return nil, apperrors.Internal("Failed to list apartments", err)
	}
	if apartments == nil {
		apartments = []model.Apartment{}
	}

	result := &model.ApartmentPage{
		Total:      total,
		Page:       page,
		TotalPages: (total + config.ApartmentPageSize - 1) / config.ApartmentPageSize,
		Apartments: apartments,
	}

	s.cache.PutPage(ctx, page, minRent, maxRent, result)
	return result, nil
}
