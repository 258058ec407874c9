package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	agreementserrors "towerdesk/internal/agreements/errors"
	"towerdesk/internal/agreements/repository"
	"towerdesk/internal/agreements/validator"
	apartmentserrors "towerdesk/internal/apartments/errors"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

type AgreementService interface {
	Apply(ctx context.Context, callerEmail string, agreement *model.Agreement) error
	GetByStatus(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error)
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// UserDirectory is the slice of the user store the workflow needs:
// role lookup for the application guards and the member promotion on
// acceptance.
type UserDirectory interface {
	FindRoleByEmail(ctx context.Context, email string) (model.Role, bool, error)
	PromoteToMember(ctx context.Context, agreement *model.Agreement, at time.Time) error
}

// ApartmentReserver performs the conditional availability flip and
// returns apartments/errors.ErrUnavailable when nothing matched.
type ApartmentReserver interface {
	Reserve(ctx context.Context, apartmentNo string) error
}

type ListingInvalidator interface {
	InvalidateListings(ctx context.Context)
}

type agreementService struct {
	repo       repository.AgreementRepository
	users      UserDirectory
	apartments ApartmentReserver
	cache      ListingInvalidator
	validator  *validator.AgreementValidator
	cfg        *config.Config
}

func NewAgreementService(
	repo repository.AgreementRepository,
	users UserDirectory,
	apartments ApartmentReserver,
	cache ListingInvalidator,
	agreementValidator *validator.AgreementValidator,
	cfg *config.Config,
) AgreementService {
	return &agreementService{
		repo:       repo,
		users:      users,
		apartments: apartments,
		cache:      cache,
		validator:  agreementValidator,
		cfg:        cfg,
	}
}

// Apply files a tenancy application for the caller. Members and admins
// cannot apply, and a user can hold at most one agreement at a time;
// the unique index on userEmail backs the same rule at the store level.
func (s *agreementService) Apply(ctx context.Context, callerEmail string, agreement *model.Agreement) error {
	if agreement.UserEmail == "" {
		agreement.UserEmail = callerEmail
	}
	if err := s.validator.Validate(agreement); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	role, found, err := s.users.FindRoleByEmail(ctx, agreement.UserEmail)
	if err != nil {
		return apperrors.Internal("Failed to resolve applicant role", err)
	}
	if found && role != model.RoleUser {
		return apperrors.InvalidInput("Members and admins cannot apply for an apartment")
	}

	if _, err := s.repo.FindByUserEmail(ctx, agreement.UserEmail); err == nil {
		return apperrors.InvalidInput("User already applied for an apartment")
	} else if !errors.Is(err, agreementserrors.ErrNotFound) {
		return apperrors.Internal("Failed to check existing agreement", err)
	}

	if err := s.repo.Create(ctx, agreement); err != nil {
		if errors.Is(err, agreementserrors.ErrDuplicate) {
			return apperrors.InvalidInput("User already applied for an apartment")
		}
		return apperrors.Internal("Failed to create agreement", err)
	}

	s.cfg.Log.Info("Agreement application filed",
		"id", agreement.ID,
		"user_email", agreement.UserEmail,
		"apartment_no", agreement.ApartmentNo,
	)
	return nil
}

func (s *agreementService) GetByStatus(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error) {
	if status != "" && status != model.AgreementPending && status != model.AgreementChecked {
		return nil, apperrors.InvalidInput("status must be 'pending' or 'checked'")
	}

	agreements, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.Internal("Failed to list agreements", err)
	}
	return agreements, nil
}

// Accept promotes the applicant to member and takes the apartment off
// the market. The three writes run in one transaction, and the
// apartment flip goes first as a conditional update: if the apartment
// is missing or already taken nothing is written at all, so two
// concurrent accepts can never double-book.
func (s *agreementService) Accept(ctx context.Context, id string) error {
	agreement, err := s.loadAgreement(ctx, id)
	if err != nil {
		return err
	}
	if agreement.Status == model.AgreementChecked {
		return apperrors.Conflict("Agreement has already been processed")
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.apartments.Reserve(sessCtx, agreement.ApartmentNo); err != nil {
			if errors.Is(err, apartmentserrors.ErrUnavailable) {
				return apperrors.InvalidInput("Apartment is not available")
			}
			return apperrors.Internal("Failed to reserve apartment", err)
		}

		if err := s.users.PromoteToMember(sessCtx, agreement, time.Now().UTC()); err != nil {
			return apperrors.Internal("Failed to promote applicant", err)
		}

		if err := s.repo.SetStatus(sessCtx, id, model.AgreementChecked); err != nil {
			return apperrors.Internal("Failed to update agreement status", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Agreement acceptance failed", "id", id, "error", err)
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateListings(ctx)
	}

	s.cfg.Log.Info("Agreement accepted",
		"id", id,
		"user_email", agreement.UserEmail,
		"apartment_no", agreement.ApartmentNo,
	)
	return nil
}

// Reject marks the agreement checked without touching the user or the
// apartment; the applicant stays a plain user.
func (s *agreementService) Reject(ctx context.Context, id string) error {
	agreement, err := s.loadAgreement(ctx, id)
	if err != nil {
		return err
	}
	if agreement.Status == model.AgreementChecked {
		return apperrors.Conflict("Agreement has already been processed")
	}

	if err := s.repo.SetStatus(ctx, id, model.AgreementChecked); err != nil {
		if errors.Is(err, agreementserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Agreement", id)
		}
		return apperrors.Internal("Failed to update agreement status", err)
	}

	s.cfg.Log.Info("Agreement rejected", "id", id, "user_email", agreement.UserEmail)
	return nil
}

func (s *agreementService) loadAgreement(ctx context.Context, id string) (*model.Agreement, error) {
	agreement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, agreementserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Agreement", id)
		}
		if errors.Is(err, agreementserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid agreement ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve agreement", err)
	}
	return agreement, nil
}
