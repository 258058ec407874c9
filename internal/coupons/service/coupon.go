package service

import (
	"context"
	"errors"

	couponserrors "towerdesk/internal/coupons/errors"
	"towerdesk/internal/coupons/repository"
	"towerdesk/internal/coupons/validator"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

type CouponService interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetAll(ctx context.Context) ([]*model.Coupon, error)
	SetAvailability(ctx context.Context, id string, isAvailable bool) error
}

type couponService struct {
	repo      repository.CouponRepository
	validator *validator.CouponValidator
	cfg       *config.Config
}

func NewCouponService(repo repository.CouponRepository, couponValidator *validator.CouponValidator, cfg *config.Config) CouponService {
	return &couponService{
		repo:      repo,
		validator: couponValidator,
		cfg:       cfg,
	}
}

func (s *couponService) Create(ctx context.Context, coupon *model.Coupon) error {
	if err := s.validator.Validate(coupon); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, couponserrors.ErrDuplicateCode) {
			return apperrors.Conflict("Coupon code already exists")
		}
		return apperrors.Internal("Failed to create coupon", err)
	}

	s.cfg.Log.Info("Coupon created", "id", coupon.ID, "code", coupon.Code)
	return nil
}

func (s *couponService) GetAll(ctx context.Context) ([]*model.Coupon, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list coupons", err)
	}
	return coupons, nil
}

func (s *couponService) SetAvailability(ctx context.Context, id string, isAvailable bool) error {
	if id == "" {
		return apperrors.InvalidInput("Coupon ID cannot be empty")
	}

	if err := s.repo.SetAvailability(ctx, id, isAvailable); err != nil {
		if errors.Is(err, couponserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Coupon", id)
		}
		if errors.Is(err, couponserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid coupon ID format")
		}
		return apperrors.Internal("Failed to update coupon", err)
	}

	s.cfg.Log.Info("Coupon availability updated", "id", id, "is_available", isAvailable)
	return nil
}
