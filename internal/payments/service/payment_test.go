package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubPaymentRepo struct {
	createFn      func(ctx context.Context, payment *model.Payment) error
	findByEmailFn func(ctx context.Context, email string) ([]*model.Payment, error)
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return s.createFn(ctx, payment)
}

func (s *stubPaymentRepo) FindByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	return s.findByEmailFn(ctx, email)
}

type stubGateway struct {
	createIntentFn func(ctx context.Context, amountCents int64, currency string) (string, error)
}

func (s *stubGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	return s.createIntentFn(ctx, amountCents, currency)
}

func testConfig() *config.Config {
	return &config.Config{
		Log:             logger.New(logger.Config{Output: io.Discard}),
		PaymentCurrency: "usd",
	}
}

func TestCreateIntentConvertsRentToCents(t *testing.T) {
	var gotAmount int64
	var gotCurrency string
	gw := &stubGateway{
		createIntentFn: func(ctx context.Context, amountCents int64, currency string) (string, error) {
			gotAmount, gotCurrency = amountCents, currency
			return "pi_secret_123", nil
		},
	}
	svc := NewPaymentService(&stubPaymentRepo{}, gw, testConfig())

	secret, err := svc.CreateIntent(context.Background(), 1450)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_123", secret)
	assert.Equal(t, int64(145000), gotAmount)
	assert.Equal(t, "usd", gotCurrency)
}

func TestCreateIntentRejectsNonPositiveRent(t *testing.T) {
	svc := NewPaymentService(&stubPaymentRepo{}, &stubGateway{}, testConfig())

	for _, rent := range []int{0, -50} {
		_, err := svc.CreateIntent(context.Background(), rent)
		require.Error(t, err)
		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestCreateIntentWrapsGatewayErrors(t *testing.T) {
	gw := &stubGateway{
		createIntentFn: func(ctx context.Context, amountCents int64, currency string) (string, error) {
			return "", errors.New("card network unreachable")
		},
	}
	svc := NewPaymentService(&stubPaymentRepo{}, gw, testConfig())

	_, err := svc.CreateIntent(context.Background(), 1450)
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
}

func TestRecordFilesUnderCallerEmail(t *testing.T) {
	var stored *model.Payment
	repo := &stubPaymentRepo{
		createFn: func(ctx context.Context, payment *model.Payment) error {
			stored = payment
			return nil
		},
	}
	svc := NewPaymentService(repo, &stubGateway{}, testConfig())

	err := svc.Record(context.Background(), "dana@example.com", &model.Payment{
		Email: "someone-else@example.com", // overridden with the verified identity
		Month: "January",
		Rent:  1450,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "dana@example.com", stored.Email)
	assert.NotEmpty(t, stored.TransactionID)
}

func TestRecordKeepsProvidedTransactionID(t *testing.T) {
	var stored *model.Payment
	repo := &stubPaymentRepo{
		createFn: func(ctx context.Context, payment *model.Payment) error {
			stored = payment
			return nil
		},
	}
	svc := NewPaymentService(repo, &stubGateway{}, testConfig())

	err := svc.Record(context.Background(), "dana@example.com", &model.Payment{
		Month:         "January",
		Rent:          1450,
		TransactionID: "pi_existing",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_existing", stored.TransactionID)
}

func TestRecordValidation(t *testing.T) {
	svc := NewPaymentService(&stubPaymentRepo{}, &stubGateway{}, testConfig())

	err := svc.Record(context.Background(), "dana@example.com", &model.Payment{Rent: 1450})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)

	err = svc.Record(context.Background(), "dana@example.com", &model.Payment{Month: "January"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestHistoryDefaultsToCaller(t *testing.T) {
	var requested string
	repo := &stubPaymentRepo{
		findByEmailFn: func(ctx context.Context, email string) ([]*model.Payment, error) {
			requested = email
			return []*model.Payment{{Email: email, Month: "January", Rent: 1450}}, nil
		},
	}
	svc := NewPaymentService(repo, &stubGateway{}, testConfig())

	payments, err := svc.History(context.Background(), "dana@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", requested)
	assert.Len(t, payments, 1)
}

func TestHistoryForbidsOtherLedgers(t *testing.T) {
	svc := NewPaymentService(&stubPaymentRepo{}, &stubGateway{}, testConfig())

	_, err := svc.History(context.Background(), "dana@example.com", "neighbor@example.com")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
