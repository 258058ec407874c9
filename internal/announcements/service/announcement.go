package service

import (
	"context"
	"encoding/json"
	"time"

	"towerdesk/internal/announcements/repository"
	"towerdesk/pkg/config"
	apperrors "towerdesk/pkg/errors"
	"towerdesk/pkg/events"
	"towerdesk/pkg/model"
)

type AnnouncementService interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	GetAll(ctx context.Context) ([]*model.Announcement, error)
}

// EventPublisher fans announcements out to the notification pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, msg events.Message) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	publisher EventPublisher
	cfg       *config.Config
}

func NewAnnouncementService(repo repository.AnnouncementRepository, publisher EventPublisher, cfg *config.Config) AnnouncementService {
	return &announcementService{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *announcementService) Create(ctx context.Context, announcement *model.Announcement) error {
	if announcement.Title == "" || announcement.Description == "" {
		return apperrors.InvalidInput("Title and description are required")
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return apperrors.Internal("Failed to create announcement", err)
	}

	s.publishCreated(ctx, announcement)

	s.cfg.Log.Info("Announcement created", "id", announcement.ID, "title", announcement.Title)
	return nil
}

func (s *announcementService) GetAll(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list announcements", err)
	}
	return announcements, nil
}

// publishCreated is best effort: the announcement is already persisted,
// a broker failure only costs the push notification.
func (s *announcementService) publishCreated(ctx context.Context, announcement *model.Announcement) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(announcement)
	if err != nil {
		s.cfg.Log.Error("Failed to marshal announcement event", "id", announcement.ID, "error", err)
		return
	}

	err = s.publisher.Publish(ctx, events.Message{
		Key:       announcement.ID,
		Value:     payload,
		Headers:   map[string]string{"event": "announcement.created"},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Error("Failed to publish announcement event", "id", announcement.ID, "error", err)
	}
}
