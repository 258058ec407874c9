package service

import (
	"context"
	"errors"

	userserrors "towerdesk/internal/users/errors"
	"towerdesk/internal/users/repository"
	"towerdesk/internal/users/validator"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

type UserService interface {
	Register(ctx context.Context, user *model.User) (bool, error)
	GetRole(ctx context.Context, email string) (model.Role, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetMembers(ctx context.Context) ([]*model.User, error)
	RemoveMember(ctx context.Context, email string) error
}

// ApartmentReleaser flips an apartment back to available. A member
// without an apartment on record yields a match-none write, which is a
// silent no-op.
type ApartmentReleaser interface {
	Release(ctx context.Context, apartmentNo string) error
}

// AgreementCleaner removes a user's agreement record on member removal.
type AgreementCleaner interface {
	DeleteByUserEmail(ctx context.Context, email string) (int64, error)
}

// ListingInvalidator drops cached apartment listing pages after an
// availability flip.
type ListingInvalidator interface {
	InvalidateListings(ctx context.Context)
}

type userService struct {
	repo       repository.UserRepository
	apartments ApartmentReleaser
	agreements AgreementCleaner
	cache      ListingInvalidator
	validator  *validator.UserValidator
	cfg        *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	apartments ApartmentReleaser,
	agreements AgreementCleaner,
	cache ListingInvalidator,
	userValidator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:       repo,
		apartments: apartments,
		agreements: agreements,
		cache:      cache,
		validator:  userValidator,
		cfg:        cfg,
	}
}

// Register stores the user on first call and is a no-op on
// re-registration. The bool result distinguishes the two so the handler
// can answer 201 vs 200. Roles are never accepted from the client.
func (s *userService) Register(ctx context.Context, user *model.User) (bool, error) {
	user.Role = model.RoleUser
	if err := s.validator.Validate(user); err != nil {
		return false, apperrors.InvalidInput(err.Error())
	}

	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return false, apperrors.Internal("Failed to register user", err)
	}

	if created {
		s.cfg.Log.Info("User registered", "email", user.Email)
	}
	return created, nil
}

func (s *userService) GetRole(ctx context.Context, email string) (model.Role, error) {
	if email == "" {
		return "", apperrors.InvalidInput("Email is required")
	}

	role, found, err := s.repo.FindRoleByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Internal("Failed to get role", err)
	}
	if !found {
		return "", apperrors.NotFound("User")
	}
	return role, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) GetMembers(ctx context.Context) ([]*model.User, error) {
	members, err := s.repo.FindMembers(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list members", err)
	}
	return members, nil
}

// RemoveMember is the inverse of agreement acceptance: release the
// apartment, demote the user, drop the agreement record. The three
// writes are sequential; a missing apartment number simply skips the
// release step.
func (s *userService) RemoveMember(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to retrieve user", err)
	}

	if user.ApartmentNo != "" {
		if err := s.apartments.Release(ctx, user.ApartmentNo); err != nil {
			return apperrors.Internal("Failed to release apartment", err)
		}
	}

	if err := s.repo.DemoteToUser(ctx, email); err != nil {
		return apperrors.Internal("Failed to demote user", err)
	}

	if _, err := s.agreements.DeleteByUserEmail(ctx, email); err != nil {
		return apperrors.Internal("Failed to delete agreement", err)
	}

	if s.cache != nil {
		s.cache.InvalidateListings(ctx)
	}

	s.cfg.Log.Info("Member removed",
		"email", email,
		"apartment_no", user.ApartmentNo,
	)
	return nil
}
