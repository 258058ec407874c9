package service

import (
	"context"

	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/model"
)

// Summary is the admin dashboard aggregate: occupancy expressed as
// percentages plus raw counts.
type Summary struct {
	TotalApartments       int64   `json:"totalApartments"`
	AvailablePercentage   float64 `json:"availablePercentage"`
	UnavailablePercentage float64 `json:"unavailablePercentage"`
	TotalUsers            int64   `json:"totalUsers"`
	TotalMembers          int64   `json:"totalMembers"`
	PendingAgreements     int64   `json:"pendingAgreements"`
}

type ApartmentCounter interface {
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type AgreementCounter interface {
	CountByStatus(ctx context.Context, status model.AgreementStatus) (int64, error)
}

type SummaryService interface {
	Summarize(ctx context.Context) (*Summary, error)
}

type summaryService struct {
	apartments ApartmentCounter
	users      UserCounter
	agreements AgreementCounter
	cfg        *config.Config
}

func NewSummaryService(apartments ApartmentCounter, users UserCounter, agreements AgreementCounter, cfg *config.Config) SummaryService {
	return &summaryService{
		apartments: apartments,
		users:      users,
		agreements: agreements,
		cfg:        cfg,
	}
}

func (s *summaryService) Summarize(ctx context.Context) (*Summary, error) {
	totalApartments, err := s.apartments.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count apartments", err)
	}
	available, err := s.apartments.CountAvailable(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count available apartments", err)
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count users", err)
	}
	totalMembers, err := s.users.CountByRole(ctx, model.RoleMember)
	if err != nil {
		return nil, apperrors.Internal("Failed to count members", err)
	}
	pending, err := s.agreements.CountByStatus(ctx, model.AgreementPending)
	if err != nil {
		return nil, apperrors.Internal("Failed to count pending agreements", err)
	}

	summary := &Summary{
		TotalApartments:   totalApartments,
		TotalUsers:        totalUsers,
		TotalMembers:      totalMembers,
		PendingAgreements: pending,
	}
	if totalApartments > 0 {
		summary.AvailablePercentage = float64(available) / float64(totalApartments) * 100
		summary.UnavailablePercentage = float64(totalApartments-available) / float64(totalApartments) * 100
	}
	return summary, nil
}
