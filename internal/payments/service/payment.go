package service

import (
	"context"

	"github.com/google/uuid"

	"towerdesk/internal/payments/gateway"
	"towerdesk/internal/payments/repository"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, rent int) (string, error)
	Record(ctx context.Context, callerEmail string, payment *model.Payment) error
	History(ctx context.Context, callerEmail, requestedEmail string) ([]*model.Payment, error)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway gateway.Gateway
	cfg     *config.Config
}

func NewPaymentService(repo repository.PaymentRepository, gw gateway.Gateway, cfg *config.Config) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		cfg:     cfg,
	}
}

// CreateIntent authorizes a rent charge with the payment gateway and
// hands the client secret back for the front end to confirm.
func (s *paymentService) CreateIntent(ctx context.Context, rent int) (string, error) {
	if rent <= 0 {
		return "", apperrors.InvalidInput("rent must be positive")
	}

	clientSecret, err := s.gateway.CreateIntent(ctx, int64(rent)*100, s.cfg.PaymentCurrency)
	if err != nil {
		return "", apperrors.Internal("Failed to create payment intent", err)
	}
	return clientSecret, nil
}

// Record appends one row to the rent ledger. The row is always filed
// under the caller's verified email regardless of the request body.
func (s *paymentService) Record(ctx context.Context, callerEmail string, payment *model.Payment) error {
	payment.Email = callerEmail
	if payment.Month == "" {
		return apperrors.InvalidInput("Month is required")
	}
	if payment.Rent <= 0 {
		return apperrors.InvalidInput("Rent must be positive")
	}
	if payment.TransactionID == "" {
		payment.TransactionID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return apperrors.Internal("Failed to record payment", err)
	}

	s.cfg.Log.Info("Payment recorded",
		"email", payment.Email,
		"month", payment.Month,
		"rent", payment.Rent,
		"transaction_id", payment.TransactionID,
	)
	return nil
}

// History returns the caller's own ledger. Asking for someone else's is
// forbidden outright.
func (s *paymentService) History(ctx context.Context, callerEmail, requestedEmail string) ([]*model.Payment, error) {
	if requestedEmail == "" {
		requestedEmail = callerEmail
	}
	if requestedEmail != callerEmail {
		return nil, apperrors.Forbidden("Payments can only be viewed by their owner")
	}

	payments, err := s.repo.FindByEmail(ctx, requestedEmail)
	if err != nil {
		return nil, apperrors.Internal("Failed to list payments", err)
	}
	return payments, nil
}
