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
	"towerdesk/pkg/events"
	"towerdesk/pkg/logger"
	"towerdesk/pkg/model"
)

type stubAnnouncementRepo struct {
	createFn  func(ctx context.Context, announcement *model.Announcement) error
	findAllFn func(ctx context.Context) ([]*model.Announcement, error)
}

func (s *stubAnnouncementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	return s.createFn(ctx, announcement)
}

func (s *stubAnnouncementRepo) FindAll(ctx context.Context) ([]*model.Announcement, error) {
	return s.findAllFn(ctx)
}

type stubPublisher struct {
	published []events.Message
	err       error
}

func (s *stubPublisher) Publish(ctx context.Context, msg events.Message) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	repo := &stubAnnouncementRepo{
		createFn: func(ctx context.Context, announcement *model.Announcement) error {
			announcement.ID = "68b12f00aa01bb02cc03dd04"
			return nil
		},
	}
	publisher := &stubPublisher{}
	svc := NewAnnouncementService(repo, publisher, testConfig())

	err := svc.Create(context.Background(), &model.Announcement{
		Title:       "Water outage",
		Description: "Maintenance on Tuesday from 9 to 12",
	})
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "68b12f00aa01bb02cc03dd04", publisher.published[0].Key)
	assert.Equal(t, "announcement.created", publisher.published[0].Headers["event"])
}

func TestCreateSucceedsWhenBrokerIsDown(t *testing.T) {
	repo := &stubAnnouncementRepo{
		createFn: func(ctx context.Context, announcement *model.Announcement) error {
			return nil
		},
	}
	publisher := &stubPublisher{err: errors.New("broker unreachable")}
	svc := NewAnnouncementService(repo, publisher, testConfig())

	err := svc.Create(context.Background(), &model.Announcement{
		Title:       "Water outage",
		Description: "Maintenance on Tuesday from 9 to 12",
	})
	assert.NoError(t, err)
}

func TestCreateWithoutPublisher(t *testing.T) {
	repo := &stubAnnouncementRepo{
		createFn: func(ctx context.Context, announcement *model.Announcement) error {
			return nil
		},
	}
	svc := NewAnnouncementService(repo, nil, testConfig())

	err := svc.Create(context.Background(), &model.Announcement{
		Title:       "Water outage",
		Description: "Maintenance on Tuesday from 9 to 12",
	})
	assert.NoError(t, err)
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	svc := NewAnnouncementService(&stubAnnouncementRepo{}, nil, testConfig())

	err := svc.Create(context.Background(), &model.Announcement{Title: "Water outage"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)

	err = svc.Create(context.Background(), &model.Announcement{Description: "No title"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestGetAllWrapsStoreErrors(t *testing.T) {
	repo := &stubAnnouncementRepo{
		findAllFn: func(ctx context.Context) ([]*model.Announcement, error) {
			return nil, errors.New("cursor timeout")
		},
	}
	svc := NewAnnouncementService(repo, nil, testConfig())

	_, err := svc.GetAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
}
