package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	couponserrors "towerdesk/internal/coupons/errors"
	"towerdesk/internal/coupons/validator"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubCouponRepo struct {
	createFn          func(ctx context.Context, coupon *model.Coupon) error
	findAllFn         func(ctx context.Context) ([]*model.Coupon, error)
	setAvailabilityFn func(ctx context.Context, id string, isAvailable bool) error
}

func (s *stubCouponRepo) Create(ctx context.Context, coupon *model.Coupon) error {
	return s.createFn(ctx, coupon)
}

func (s *stubCouponRepo) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	return s.findAllFn(ctx)
}

func (s *stubCouponRepo) SetAvailability(ctx context.Context, id string, isAvailable bool) error {
	return s.setAvailabilityFn(ctx, id, isAvailable)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func validCoupon() *model.Coupon {
	return &model.Coupon{
		Code:        "NEWYEAR25",
		Discount:    25,
		Description: "25% off January rent",
		IsAvailable: true,
	}
}

func TestCreateCoupon(t *testing.T) {
	var stored *model.Coupon
	repo := &stubCouponRepo{
		createFn: func(ctx context.Context, coupon *model.Coupon) error {
			stored = coupon
			return nil
		},
	}
	svc := NewCouponService(repo, validator.NewCouponValidator(), testConfig())

	err := svc.Create(context.Background(), validCoupon())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "NEWYEAR25", stored.Code)
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	repo := &stubCouponRepo{
		createFn: func(ctx context.Context, coupon *model.Coupon) error {
			return couponserrors.ErrDuplicateCode
		},
	}
	svc := NewCouponService(repo, validator.NewCouponValidator(), testConfig())

	err := svc.Create(context.Background(), validCoupon())
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Equal(t, "Coupon code already exists", appErr.Message)
}

func TestCreateCouponValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *model.Coupon)
	}{
		{name: "lowercase code", mutate: func(c *model.Coupon) { c.Code = "newyear25" }},
		{name: "zero discount", mutate: func(c *model.Coupon) { c.Discount = 0 }},
		{name: "discount over 100", mutate: func(c *model.Coupon) { c.Discount = 120 }},
		{name: "missing description", mutate: func(c *model.Coupon) { c.Description = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCouponService(&stubCouponRepo{}, validator.NewCouponValidator(), testConfig())

			coupon := validCoupon()
			tc.mutate(coupon)
			err := svc.Create(context.Background(), coupon)
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
		})
	}
}

func TestSetAvailabilityUnknownCoupon(t *testing.T) {
	repo := &stubCouponRepo{
		setAvailabilityFn: func(ctx context.Context, id string, isAvailable bool) error {
			return couponserrors.ErrNotFound
		},
	}
	svc := NewCouponService(repo, validator.NewCouponValidator(), testConfig())

	err := svc.SetAvailability(context.Background(), "68b12f00aa01bb02cc03dd04", false)
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSetAvailabilityMalformedID(t *testing.T) {
	repo := &stubCouponRepo{
		setAvailabilityFn: func(ctx context.Context, id string, isAvailable bool) error {
			return couponserrors.ErrInvalidID
		},
	}
	svc := NewCouponService(repo, validator.NewCouponValidator(), testConfig())

	err := svc.SetAvailability(context.Background(), "nonsense", false)
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}

func TestSetAvailabilityRequiresID(t *testing.T) {
	svc := NewCouponService(&stubCouponRepo{}, validator.NewCouponValidator(), testConfig())

	err := svc.SetAvailability(context.Background(), "", true)
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}
